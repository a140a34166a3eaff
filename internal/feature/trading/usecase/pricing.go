package usecase

import "math"

const (
	// MinPrice は価格の下限です。インパクトとノイズの符号に関わらず、
	// 株価がこの値を下回ることはありません。
	MinPrice = 0.01

	// FallbackTotalShares は total_shares が未設定の既存レコードに対する
	// ゼロ除算回避のフォールバック値です。新規上場では総株式数が必須の
	// ため、通常この値が使われることはありません。
	FallbackTotalShares = 1_000_000
)

// NoiseFunc は約定後の価格に加えるランダムノイズの割合を返します。
// volatility（パーセント）を受け取り、[-volatility, +volatility] の
// 一様乱数をパーセント値で返します。テストでは固定値を注入します。
type NoiseFunc func(volatility float64) float64

// applyPriceImpact は約定後の新しい株価を計算します。
//
// インパクトは約定数量の発行済株式数に対する比率に比例し、買いは価格を
// 押し上げ、売りは押し下げます。その後 volatility に応じたノイズを加え、
// MinPrice を下限として返します。
func applyPriceImpact(currentPrice float64, quantity, totalShares int64, buy bool, volatility float64, noise NoiseFunc) float64 {
	if totalShares <= 0 {
		totalShares = FallbackTotalShares
	}

	impactPct := float64(quantity) / float64(totalShares) * 100
	priceImpact := currentPrice * impactPct / 100

	priceAfterImpact := currentPrice + priceImpact
	if !buy {
		priceAfterImpact = currentPrice - priceImpact
	}

	noisePct := noise(volatility) / 100
	newPrice := priceAfterImpact + priceAfterImpact*noisePct

	return math.Max(MinPrice, newPrice)
}
