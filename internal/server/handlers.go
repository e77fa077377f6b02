package server

import (
	_ "embed"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"balances/internal/documents"
	"balances/pkg/services"
)

// Form field names of the sum-invoices request
const (
	fieldFile           = "file"
	fieldExchangeRates  = "exchangeRates"
	fieldOutputCurrency = "outputCurrency"
	fieldCustomerVAT    = "customerVat"
)

const multipartMemory = 8 << 20

//go:embed docs.html
var docsPage []byte

func (s *Server) sumInvoices(c *gin.Context) {
	if s.opts.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxUploadBytes)
	}

	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(c, err)
		return
	}

	req := services.SumInvoicesRequest{
		ExchangeRates:  c.PostForm(fieldExchangeRates),
		OutputCurrency: c.PostForm(fieldOutputCurrency),
		CustomerVAT:    c.PostForm(fieldCustomerVAT),
	}

	// A missing file is reported by the service once the rates are checked.
	if file, header, err := c.Request.FormFile(fieldFile); err == nil {
		defer file.Close()

		source, err := documents.SourceForFile(header.Filename, file)
		if err != nil {
			writeError(c, err)
			return
		}
		if closer, ok := source.(io.Closer); ok {
			defer closer.Close()
		}
		req.Rows = source
	}

	result, err := s.service.SumInvoices(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) docs(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", docsPage)
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
