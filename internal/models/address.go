package models

// Address is owned by the address service and forwarded to callers as-is.
type Address struct {
	AddID   int    `json:"addId"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Pin     string `json:"pin"`
	AddedOn string `json:"addedOn"`
	UserID  string `json:"userId"`
}
