package signature_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/saft-pt/internal/signature"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	return key
}

func document(docNo, gross string) signature.Document {
	return signature.Document{
		Date:            time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		SystemEntryDate: time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC),
		DocNo:           docNo,
		GrossTotal:      decimal.RequireFromString(gross),
	}
}

func TestMessage(t *testing.T) {
	t.Run("first document of a series", func(t *testing.T) {
		msg := signature.Message(document("FT A/1", "123"), "")

		assert.Equal(t, "2024-03-01;2024-03-01T10:15:00;FT A/1;123.00;", msg)
	})

	t.Run("chained document", func(t *testing.T) {
		msg := signature.Message(document("FT A/2", "0.5"), "abc=")

		assert.Equal(t, "2024-03-01;2024-03-01T10:15:00;FT A/2;0.50;abc=", msg)
	})
}

func TestHashControl(t *testing.T) {
	hash := "abcdefghij" + "KLMNOPQRST" + "uvwxyz0123" + "456789"

	assert.Equal(t, "aKu4", signature.HashControl(hash))
	assert.Equal(t, "aK", signature.HashControl("abcdefghijKL"))
	assert.Equal(t, "", signature.HashControl(""))
}

func TestSignVerify(t *testing.T) {
	key := newKey(t)
	signer := signature.NewSigner(key)
	verifier := signature.NewVerifier(&key.PublicKey)

	t.Run("Given a signed message When it is verified Then it passes", func(t *testing.T) {
		msg := signature.Message(document("FT A/1", "10"), "")

		hash, err := signer.Sign(msg)
		require.NoError(t, err)

		assert.NoError(t, verifier.Verify(msg, hash))
	})

	t.Run("Given a signed message When the total changes Then verification fails", func(t *testing.T) {
		hash, err := signer.Sign(signature.Message(document("FT A/1", "10"), ""))
		require.NoError(t, err)

		err = verifier.Verify(signature.Message(document("FT A/1", "10.01"), ""), hash)

		assert.ErrorIs(t, err, signature.ErrInvalidSignature)
	})

	t.Run("Given a hash that is not base64 When it is verified Then it fails", func(t *testing.T) {
		err := verifier.Verify("x", "not base64!")

		assert.ErrorIs(t, err, signature.ErrInvalidSignature)
	})

	t.Run("Given another key When a hash is verified Then it fails", func(t *testing.T) {
		hash, err := signer.Sign("x")
		require.NoError(t, err)

		other := newKey(t)
		err = signature.NewVerifier(&other.PublicKey).Verify("x", hash)

		assert.ErrorIs(t, err, signature.ErrInvalidSignature)
	})
}

func TestChain(t *testing.T) {
	key := newKey(t)
	signer := signature.NewSigner(key)
	verifier := signature.NewVerifier(&key.PublicKey)
	docs := []signature.Document{
		document("FT A/1", "100"),
		document("FT A/2", "50"),
		document("FT A/3", "12.3"),
	}

	hashes, err := signer.SignChain(docs, "")
	require.NoError(t, err)
	require.Len(t, hashes, 3)
	for i := range docs {
		docs[i].Hash = hashes[i]
	}

	t.Run("Given a signed series When it is verified Then no link is broken", func(t *testing.T) {
		assert.Empty(t, verifier.VerifyChain(docs, ""))
	})

	t.Run("Given each hash When it is checked Then it signs the previous one", func(t *testing.T) {
		assert.NoError(t, verifier.Verify(signature.Message(docs[1], hashes[0]), hashes[1]))
	})

	t.Run("Given a tampered document When the series is verified Then only that link is reported", func(t *testing.T) {
		tampered := append([]signature.Document(nil), docs...)
		tampered[1].GrossTotal = decimal.RequireFromString("51")

		errs := verifier.VerifyChain(tampered, "")

		require.Len(t, errs, 1)
		assert.Equal(t, "FT A/2", errs[0].DocNo)
		assert.ErrorIs(t, errs[0], signature.ErrInvalidSignature)
	})

	t.Run("Given a series that continues another When verified from the middle Then the previous hash is used", func(t *testing.T) {
		assert.Empty(t, verifier.VerifyChain(docs[1:], hashes[0]))
		assert.Len(t, verifier.VerifyChain(docs[1:], ""), 1)
	})
}

func TestKeys(t *testing.T) {
	key := newKey(t)

	t.Run("PKCS#1 private key", func(t *testing.T) {
		data := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})

		parsed, err := signature.ParsePrivateKeyPEM(data)

		require.NoError(t, err)
		assert.True(t, key.Equal(parsed))
	})

	t.Run("PKCS#8 private key", func(t *testing.T) {
		der, err := x509.MarshalPKCS8PrivateKey(key)
		require.NoError(t, err)
		data := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

		parsed, err := signature.ParsePrivateKeyPEM(data)

		require.NoError(t, err)
		assert.True(t, key.Equal(parsed))
	})

	t.Run("PKIX public key from a file", func(t *testing.T) {
		der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
		require.NoError(t, err)
		path := filepath.Join(t.TempDir(), "public.pem")
		require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), 0600))

		parsed, err := signature.LoadPublicKey(path)

		require.NoError(t, err)
		assert.True(t, key.PublicKey.Equal(parsed))
	})

	t.Run("PKCS#1 public key", func(t *testing.T) {
		data := pem.EncodeToMemory(&pem.Block{Type: "RSA PUBLIC KEY", Bytes: x509.MarshalPKCS1PublicKey(&key.PublicKey)})

		parsed, err := signature.ParsePublicKeyPEM(data)

		require.NoError(t, err)
		assert.True(t, key.PublicKey.Equal(parsed))
	})

	t.Run("not PEM", func(t *testing.T) {
		_, err := signature.ParsePublicKeyPEM([]byte("hello"))

		assert.ErrorIs(t, err, signature.ErrInvalidKey)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := signature.LoadPrivateKey(filepath.Join(t.TempDir(), "none.pem"))

		assert.Error(t, err)
	})
}
