// =============================================================================
// SAF-T (PT) Toolkit - Document Signature
// =============================================================================
//
// Certified invoicing software signs every sales, movement and working
// document. The signed message joins five values with semicolons:
//
//   InvoiceDate;SystemEntryDate;DocNo;GrossTotal;PreviousHash
//   2024-03-01;2024-03-01T10:15:00;FT A/2;123.00;<hash of FT A/1>
//
// GrossTotal always carries two decimals and PreviousHash is empty for the
// first document of a series. The signature is RSA PKCS#1 v1.5 over SHA-1,
// base64 encoded, and it is what the document stores in Hash.
//
// =============================================================================

package signature

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
)

// ErrInvalidSignature is returned when a hash does not match its message.
var ErrInvalidSignature = errors.New("signature: hash does not match document")

// ErrInvalidKey is returned when a PEM block holds no usable RSA key.
var ErrInvalidKey = errors.New("signature: not an RSA key")

// =============================================================================
// MESSAGE
// =============================================================================

// Document holds the values that go into the signed message.
type Document struct {
	Date            time.Time
	SystemEntryDate time.Time
	DocNo           string
	GrossTotal      decimal.Decimal
	Hash            string
}

// Message builds the signed text of doc chained to previousHash.
func Message(doc Document, previousHash string) string {
	return strings.Join([]string{
		doc.Date.Format(saft.DateFormat),
		doc.SystemEntryDate.Format(saft.DateTimeFormat),
		doc.DocNo,
		doc.GrossTotal.StringFixed(2),
		previousHash,
	}, ";")
}

// HashControl returns the four characters of a hash printed on the
// document: characters 1, 11, 21 and 31.
func HashControl(hash string) string {
	var b strings.Builder
	for _, i := range []int{0, 10, 20, 30} {
		if i < len(hash) {
			b.WriteByte(hash[i])
		}
	}
	return b.String()
}

// =============================================================================
// SIGN / VERIFY
// =============================================================================

// Signer signs messages with a private key.
type Signer struct {
	key  *rsa.PrivateKey
	rand io.Reader
}

// NewSigner creates a signer. PKCS#1 v1.5 signatures are deterministic, so
// the random source is only used for blinding.
func NewSigner(key *rsa.PrivateKey) *Signer {
	return &Signer{key: key, rand: rand.Reader}
}

// Sign returns the base64 signature of message.
func (s *Signer) Sign(message string) (string, error) {
	digest := sha1.Sum([]byte(message))
	sig, err := rsa.SignPKCS1v15(s.rand, s.key, crypto.SHA1, digest[:])
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// SignChain signs docs in order, each one chained to the hash of the one
// before it. previousHash is the hash of the document preceding docs[0],
// empty when docs starts a series. The returned slice holds one hash per
// document.
func (s *Signer) SignChain(docs []Document, previousHash string) ([]string, error) {
	hashes := make([]string, len(docs))
	for i, doc := range docs {
		h, err := s.Sign(Message(doc, previousHash))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", doc.DocNo, err)
		}
		hashes[i] = h
		previousHash = h
	}
	return hashes, nil
}

// Verifier checks signatures with a public key.
type Verifier struct {
	key *rsa.PublicKey
}

func NewVerifier(key *rsa.PublicKey) *Verifier {
	return &Verifier{key: key}
}

// Verify checks that hash is the signature of message.
func (v *Verifier) Verify(message, hash string) error {
	sig, err := base64.StdEncoding.DecodeString(hash)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	digest := sha1.Sum([]byte(message))
	if err := rsa.VerifyPKCS1v15(v.key, crypto.SHA1, digest[:], sig); err != nil {
		return ErrInvalidSignature
	}
	return nil
}

// ChainError names the document whose hash failed.
type ChainError struct {
	DocNo string
	Err   error
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("%s: %v", e.DocNo, e.Err)
}

func (e *ChainError) Unwrap() error {
	return e.Err
}

// VerifyChain checks docs in order, each against the hash of the one
// before it. previousHash is the hash preceding docs[0]. Every broken
// link is reported; verification goes on with the stored hash.
func (v *Verifier) VerifyChain(docs []Document, previousHash string) []*ChainError {
	var errs []*ChainError
	for _, doc := range docs {
		if err := v.Verify(Message(doc, previousHash), doc.Hash); err != nil {
			errs = append(errs, &ChainError{DocNo: doc.DocNo, Err: err})
		}
		previousHash = doc.Hash
	}
	return errs
}

// =============================================================================
// KEYS
// =============================================================================

// ParsePrivateKeyPEM reads a PKCS#1 or PKCS#8 RSA private key.
func ParsePrivateKeyPEM(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidKey)
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, ErrInvalidKey
	}
	return key, nil
}

// ParsePublicKeyPEM reads a PKIX or PKCS#1 RSA public key, or the key of
// an X.509 certificate.
func ParsePublicKeyPEM(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidKey)
	}
	switch block.Type {
	case "CERTIFICATE":
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		key, ok := cert.PublicKey.(*rsa.PublicKey)
		if !ok {
			return nil, ErrInvalidKey
		}
		return key, nil
	case "RSA PUBLIC KEY":
		key, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		return key, nil
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, ErrInvalidKey
	}
	return key, nil
}

// LoadPrivateKey reads a PEM private key file.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}
	return ParsePrivateKeyPEM(data)
}

// LoadPublicKey reads a PEM public key or certificate file.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read public key: %w", err)
	}
	return ParsePublicKeyPEM(data)
}
