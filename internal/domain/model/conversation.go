package model

// Intent labels the classifier is instructed to choose from. The classifier
// output is used as-is after normalization, so downstream code must tolerate
// labels outside this set.
const (
	IntentProductInquiry   = "product-inquiry"
	IntentStockInquiry     = "stock-inquiry"
	IntentPromotionInquiry = "promotion-inquiry"
	IntentComplaint        = "complaint"
	IntentGreeting         = "greeting"
	IntentOrderPlacement   = "order-placement"
	IntentOther            = "other"
)

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// ConversationTurn is one completed question/answer exchange within a session.
// Turns are append-only and their order is significant: they are rendered
// verbatim, oldest first, into the generation prompt.
type ConversationTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
