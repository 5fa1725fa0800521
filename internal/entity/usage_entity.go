package entity

// Usage tracks the remaining think-longer invocations for one client profile
// on one calendar day. Date is a YYYY-MM-DD string; when it no longer matches
// today the count resets to the daily limit before any read is honored.
type Usage struct {
	Count int    `json:"count"`
	Date  string `json:"date"`
}
