package discount

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lys-checkout/internal/model"
)

// ctxCheckInterval is how many lines are read between context checks.
const ctxCheckInterval = 10_000

// readCatalog decodes a gzipped stream holding one JSON discount code per line.
// Blank lines are skipped; records without a code are rejected.
func readCatalog(ctx context.Context, r io.Reader, source string) (*mapCatalog, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
	}
	defer gzipReader.Close()

	catalog := NewMapCatalog(1024).(*mapCatalog)

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		if lineNo%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var dc model.DiscountCode
		if err := json.Unmarshal([]byte(line), &dc); err != nil {
			return nil, fmt.Errorf("invalid discount record in %s at line %d: %w", source, lineNo, err)
		}
		if strings.TrimSpace(dc.Code) == "" {
			return nil, fmt.Errorf("discount record in %s at line %d has no code", source, lineNo)
		}
		catalog.Add(&dc)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading discount file %s: %w", source, err)
	}

	return catalog, nil
}
