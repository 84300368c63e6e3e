package model

// AlertType identifies the condition a price alert watches for.
type AlertType string

const (
	AlertTypePriceAbove    AlertType = "price_above"
	AlertTypePriceBelow    AlertType = "price_below"
	AlertTypePercentChange AlertType = "percent_change"
)

// AlertStatus tracks the lifecycle of a price alert. Alerts start active and
// end up either triggered or disabled; both end states are terminal.
type AlertStatus string

const (
	AlertStatusActive    AlertStatus = "active"
	AlertStatusTriggered AlertStatus = "triggered"
	AlertStatusDisabled  AlertStatus = "disabled"
)

const (
	TransactionTypeBuy  = "BUY"
	TransactionTypeSell = "SELL"
)
