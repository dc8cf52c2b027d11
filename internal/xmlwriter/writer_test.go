package xmlwriter_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/saft-pt/internal/xmlwriter"
	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/auditfile"
)

func newFile(companyName string) *auditfile.AuditFile {
	a := auditfile.New(nil)
	a.Header().SetCompanyName(companyName)
	return a
}

func TestWriteWithOptions(t *testing.T) {
	t.Run("Given the default options When a file is written Then it starts with a UTF-8 declaration", func(t *testing.T) {
		data, err := xmlwriter.Write(newFile("ACME Lda"))

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte(`<?xml version="1.0" encoding="UTF-8"?>`)))
		assert.Contains(t, string(data), "\n  <Header>")
	})

	t.Run("Given no declaration When a file is written Then it starts with the root element", func(t *testing.T) {
		options := xmlwriter.DefaultWriteOptions()
		options.IncludeXMLDeclaration = false
		options.Indent = 0

		data, err := xmlwriter.WriteWithOptions(newFile("ACME Lda"), options)

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte(`<AuditFile xmlns="`+saft.Namespace+`"`)))
		assert.NotContains(t, string(data), "\n  <Header>")
	})

	t.Run("Given root attributes When a file is written Then they are added in key order", func(t *testing.T) {
		options := xmlwriter.DefaultWriteOptions()
		options.RootAttributes = map[string]string{
			"xsi:schemaLocation": "urn:x saft.xsd",
			"xmlns:xsi":          "http://www.w3.org/2001/XMLSchema-instance",
		}

		data, err := xmlwriter.WriteWithOptions(newFile("ACME Lda"), options)

		require.NoError(t, err)
		assert.Less(t, bytes.Index(data, []byte("xmlns:xsi=")), bytes.Index(data, []byte("xsi:schemaLocation=")))
		assert.Contains(t, string(data), `xsi:schemaLocation="urn:x saft.xsd"`)
	})

	t.Run("Given Windows-1252 When a file is written Then accents are single bytes", func(t *testing.T) {
		options := xmlwriter.DefaultWriteOptions()
		options.Encoding = "windows-1252"

		data, err := xmlwriter.WriteWithOptions(newFile("Construções Lda"), options)
		require.NoError(t, err)

		assert.True(t, bytes.HasPrefix(data, []byte(`<?xml version="1.0" encoding="windows-1252"?>`)))
		assert.Contains(t, string(data), "<CompanyName>Constru\xe7\xf5es Lda</CompanyName>")
	})

	t.Run("Given an unknown encoding When a file is written Then an error is returned", func(t *testing.T) {
		options := xmlwriter.DefaultWriteOptions()
		options.Encoding = "klingon"

		_, err := xmlwriter.WriteWithOptions(newFile("ACME Lda"), options)

		assert.Error(t, err)
	})
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xml")

	require.NoError(t, xmlwriter.WriteFile(newFile("ACME Lda"), path, xmlwriter.DefaultWriteOptions()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<CompanyName>ACME Lda</CompanyName>")
}
