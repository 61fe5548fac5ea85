package model

// KeyFile represents the encrypted key file structure
type KeyFile struct {
	Coin       string `json:"coin"`
	ScryptN    int    `json:"scryptN,omitempty"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// KeyData represents decrypted key file contents
type KeyData struct {
	ExtendedKey []byte `json:"extendedKey"` // xprv or mnemonic, stored as base64 in JSON
	CreatedAt   string `json:"createdAt"`
}
