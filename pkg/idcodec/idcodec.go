package idcodec

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrDecode indica un token malformado, manipulado o cifrado con otra clave.
// Decode nunca hace panic con entrada controlada por el atacante: siempre retorna este error.
var ErrDecode = errors.New("idcodec: token inválido")

// Codec cifra identificadores (tenant, tienda) para incluirlos como claims opacos en el JWT.
// Usa XChaCha20-Poly1305 con nonce aleatorio por llamada: dos tokens del mismo ID
// no son correlacionables por inspección, pero Decode(Encode(x)) == x siempre.
type Codec struct {
	key []byte
}

// New construye el codec con una clave simétrica de 32 bytes.
func New(key []byte) (*Codec, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("idcodec: la clave debe tener %d bytes, tiene %d", chacha20poly1305.KeySize, len(key))
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &Codec{key: k}, nil
}

// Encode cifra el identificador y lo devuelve en base64url (nonce || ciphertext).
// El nonce es aleatorio en cada llamada, así que el token resultante nunca se repite.
func (c *Codec) Encode(rawID string) (string, error) {
	if rawID == "" {
		return "", fmt.Errorf("idcodec: id vacío")
	}
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("idcodec: %w", err)
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("idcodec: nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(rawID), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decode descifra un token generado por Encode. Retorna ErrDecode ante cualquier
// entrada malformada o manipulada; repetir la llamada con el mismo token da el mismo resultado.
func (c *Codec) Decode(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", ErrDecode
	}
	if len(raw) < chacha20poly1305.NonceSizeX+chacha20poly1305.Overhead {
		return "", ErrDecode
	}
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", ErrDecode
	}
	nonce := raw[:chacha20poly1305.NonceSizeX]
	plain, err := aead.Open(nil, nonce, raw[chacha20poly1305.NonceSizeX:], nil)
	if err != nil {
		return "", ErrDecode
	}
	return string(plain), nil
}
