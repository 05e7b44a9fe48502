// Package nasdaq reads the Nasdaq Trader symbol directory file (nasdaqtraded.txt).
package nasdaq

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/etpscan/internal/common"
	"github.com/Veraticus/etpscan/internal/model"
)

// Column names as they appear in the header line.
const (
	ColNasdaqTraded    = "Nasdaq Traded"
	ColSymbol          = "Symbol"
	ColSecurityName    = "Security Name"
	ColListingExchange = "Listing Exchange"
	ColMarketCategory  = "Market Category"
	ColETF             = "ETF"
	ColRoundLotSize    = "Round Lot Size"
	ColTestIssue       = "Test Issue"
	ColFinancialStatus = "Financial Status"
	ColCQSSymbol       = "CQS Symbol"
	ColNasdaqSymbol    = "NASDAQ Symbol"
	ColNextShares      = "NextShares"
)

const (
	footerPrefix = "File Creation Time"
	utf8BOM      = "\ufeff"
	// A header line must have at least this many fields.
	minHeaderFields = 5
)

// Listing is the parsed file.
type Listing struct {
	// CreatedAt is the raw text of the footer line, when present.
	CreatedAt string
	Header    []string
	Rows      []model.Listing
}

// Parse reads a pipe-delimited listing. The header is located even when preceded by a BOM
// or comment lines. Parsing stops at the "File Creation Time" footer. Short rows are padded.
func Parse(r io.Reader) (*Listing, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	out := &Listing{}
	var index map[string]int

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if index == nil {
			if fields, ok := headerFields(line); ok {
				out.Header = fields
				index = make(map[string]int, len(fields))
				for i, f := range fields {
					index[f] = i
				}
			}
			continue
		}

		if strings.HasPrefix(line, footerPrefix) {
			out.CreatedAt = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(line, footerPrefix), ":"))
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, "|")
		for len(parts) < len(out.Header) {
			parts = append(parts, "")
		}
		out.Rows = append(out.Rows, rowFrom(parts, index))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read listing: %w", err)
	}
	if index == nil {
		return nil, fmt.Errorf("%w: header line %q not found", common.ErrMalformedListing, ColNasdaqTraded)
	}
	if _, ok := index[ColSecurityName]; !ok {
		return nil, fmt.Errorf("%w: missing column %q", common.ErrMalformedListing, ColSecurityName)
	}

	return out, nil
}

// ParseBytes is Parse over an in-memory file.
func ParseBytes(data []byte) (*Listing, error) {
	return Parse(bytes.NewReader(data))
}

func headerFields(line string) ([]string, bool) {
	parts := strings.Split(line, "|")
	if len(parts) < minHeaderFields {
		return nil, false
	}
	fields := make([]string, len(parts))
	for i, p := range parts {
		fields[i] = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p), utf8BOM))
	}
	if fields[0] != ColNasdaqTraded {
		return nil, false
	}
	return fields, true
}

func rowFrom(parts []string, index map[string]int) model.Listing {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(parts) {
			return ""
		}
		return strings.TrimSpace(parts[i])
	}

	return model.Listing{
		NasdaqTraded:    get(ColNasdaqTraded),
		Symbol:          get(ColSymbol),
		SecurityName:    get(ColSecurityName),
		ListingExchange: get(ColListingExchange),
		MarketCategory:  get(ColMarketCategory),
		ETF:             get(ColETF),
		RoundLotSize:    get(ColRoundLotSize),
		TestIssue:       get(ColTestIssue),
		FinancialStatus: get(ColFinancialStatus),
		CQSSymbol:       get(ColCQSSymbol),
		NasdaqSymbol:    get(ColNasdaqSymbol),
		NextShares:      get(ColNextShares),
	}
}
