package model

// DeriveRequest represents request for POST /derive
type DeriveRequest struct {
	Coin       string   `json:"coin"`
	Cols       []string `json:"cols,omitempty"`
	NumDerive  int      `json:"numderive,omitempty"`
	StartIndex int      `json:"startindex,omitempty"`
	Path       string   `json:"path,omitempty"`
	QR         bool     `json:"qr,omitempty"`
}

// AddressEntry is the public part of a derived record
type AddressEntry struct {
	Path    string `json:"path,omitempty"`
	Address string `json:"address"`
	PubKey  string `json:"pubkey,omitempty"`
	QR      string `json:"QR,omitempty"` // base64 PNG
}

// DeriveResponse represents response for POST /derive
type DeriveResponse struct {
	Coin      string         `json:"coin"`
	Addresses []AddressEntry `json:"addresses"`
}

// CoinsResponse represents response for GET /coins
type CoinsResponse struct {
	Coins []string `json:"coins"`
}
