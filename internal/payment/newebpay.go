// Package payment implements the NewebPay MPG trade encoding: AES-256-CBC
// encrypted trade data plus an uppercase SHA-256 check hash.
package payment

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var (
	ErrBadCredentialSize = errors.New("hash key must be 32 bytes and hash iv 16 bytes")
	ErrBadTradeInfo      = errors.New("malformed trade info")
)

// Config holds the merchant credentials issued by the gateway.
type Config struct {
	MerchantID string
	HashKey    string
	HashIV     string
	Version    string
}

// Codec encrypts outgoing trades and decrypts gateway notifications.
type Codec struct {
	cfg   Config
	block cipher.Block
}

// New validates the credentials and builds a Codec.
func New(cfg Config) (*Codec, error) {
	if len(cfg.HashKey) != 32 || len(cfg.HashIV) != aes.BlockSize {
		return nil, ErrBadCredentialSize
	}

	block, err := aes.NewCipher([]byte(cfg.HashKey))
	if err != nil {
		return nil, err
	}

	return &Codec{cfg: cfg, block: block}, nil
}

// Trade is one order handed to the gateway.
type Trade struct {
	MerchantOrderNo string
	Amount          int
	ItemDesc        string
	Email           string
	Timestamp       int64
}

// Payload is the encrypted form posted to the gateway's MPG endpoint.
type Payload struct {
	MerchantID string `json:"MerchantID"`
	TradeInfo  string `json:"TradeInfo"`
	TradeSha   string `json:"TradeSha"`
	Version    string `json:"Version"`
}

// ReturnData is the settlement detail inside a successful notification.
type ReturnData struct {
	MerchantOrderNo   string `json:"MerchantOrderNo"`
	TradeNo           string `json:"TradeNo"`
	Amt               int    `json:"Amt"`
	PaymentType       string `json:"PaymentType"`
	PayTime           string `json:"PayTime"`
	IP                string `json:"IP"`
	EscrowBank        string `json:"EscrowBank"`
	PayBankCode       string `json:"PayBankCode"`
	PayerAccount5Code string `json:"PayerAccount5Code"`
}

// NotifyResult is the decrypted body of a gateway notification.
type NotifyResult struct {
	Status  string     `json:"Status"`
	Message string     `json:"Message"`
	Result  ReturnData `json:"Result"`
}

// EncryptTrade url-encodes the trade fields, encrypts them and attaches the
// check hash.
func (c *Codec) EncryptTrade(t Trade) Payload {
	values := url.Values{}
	values.Set("MerchantID", c.cfg.MerchantID)
	values.Set("RespondType", "JSON")
	values.Set("TimeStamp", strconv.FormatInt(t.Timestamp, 10))
	values.Set("Version", c.cfg.Version)
	values.Set("MerchantOrderNo", t.MerchantOrderNo)
	values.Set("Amt", strconv.Itoa(t.Amount))
	values.Set("ItemDesc", t.ItemDesc)
	values.Set("Email", t.Email)

	tradeInfo := c.encrypt(values.Encode())

	return Payload{
		MerchantID: c.cfg.MerchantID,
		TradeInfo:  tradeInfo,
		TradeSha:   c.hash(tradeInfo),
		Version:    c.cfg.Version,
	}
}

// DecryptNotify decrypts the TradeInfo of a gateway notification and parses
// the JSON body inside.
func (c *Codec) DecryptNotify(tradeInfo string) (*NotifyResult, error) {
	plain, err := c.decrypt(tradeInfo)
	if err != nil {
		return nil, err
	}

	var result NotifyResult
	if err := json.Unmarshal(plain, &result); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadTradeInfo, err)
	}
	return &result, nil
}

// VerifySha reports whether tradeSha matches the check hash of tradeInfo.
func (c *Codec) VerifySha(tradeInfo, tradeSha string) bool {
	return c.hash(tradeInfo) == tradeSha
}

func (c *Codec) encrypt(plain string) string {
	padded := pkcs7Pad([]byte(plain), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, []byte(c.cfg.HashIV)).CryptBlocks(out, padded)
	return hex.EncodeToString(out)
}

func (c *Codec) decrypt(tradeInfo string) ([]byte, error) {
	raw, err := hex.DecodeString(tradeInfo)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadTradeInfo, err)
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return nil, ErrBadTradeInfo
	}

	plain := make([]byte, len(raw))
	cipher.NewCBCDecrypter(c.block, []byte(c.cfg.HashIV)).CryptBlocks(plain, raw)

	return pkcs7Unpad(plain, aes.BlockSize)
}

// hash builds the uppercase SHA-256 check hash over the key-wrapped trade
// info, per the MPG document.
func (c *Codec) hash(tradeInfo string) string {
	raw := "HashKey=" + c.cfg.HashKey + "&" + tradeInfo + "&HashIV=" + c.cfg.HashIV
	sum := sha256.Sum256([]byte(raw))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, ErrBadTradeInfo
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrBadTradeInfo
		}
	}
	return data[:len(data)-n], nil
}
