// Package quotes — мотивационные цитаты для главного экрана.
package quotes

// Quote — цитата и её автор.
type Quote struct {
	Text   string `json:"text" firestore:"MotivasyonSoz"`
	Author string `json:"author" firestore:"KimYazdi"`
}

// Fallback отдаётся, если ни одной цитаты загрузить не удалось.
var Fallback = Quote{
	Text:   "Başarı, her gün küçük adımlar atmaktır.",
	Author: "Cepte Motivasyon",
}
