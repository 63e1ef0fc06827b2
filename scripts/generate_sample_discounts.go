//go:build ignore

package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"lys-checkout/internal/model"

	"github.com/shopspring/decimal"
)

// Writes a sample discount catalogue for local runs.
//
//	go run scripts/generate_sample_discounts.go
func main() {
	dataDir := "data/discounts"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	validFrom := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	expired := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)

	codes := []model.DiscountCode{
		{
			ID:            "d-save10",
			Code:          "SAVE10",
			Name:          "10% off",
			Type:          model.DiscountKindGeneral,
			DiscountType:  model.DiscountTypePercentage,
			DiscountValue: decimal.NewFromInt(10),
			ValidFrom:     validFrom,
			Active:        true,
		},
		{
			ID:            "d-trade25",
			Code:          "TRADE25",
			Name:          "£25 off trade orders over £250",
			Type:          model.DiscountKindPromotional,
			DiscountType:  model.DiscountTypeFixed,
			DiscountValue: decimal.NewFromInt(25),
			ValidFrom:     validFrom,
			Active:        true,
			Conditions: &model.DiscountConditions{
				MinOrderValue: decimal.NewNullDecimal(decimal.NewFromInt(250)),
			},
		},
		{
			ID:                 "d-welcome",
			Code:               "WELCOME15",
			Name:               "Welcome offer",
			Type:               model.DiscountKindPromotional,
			DiscountType:       model.DiscountTypePercentage,
			DiscountValue:      decimal.NewFromInt(15),
			MaxUsesPerCustomer: 1,
			ValidFrom:          validFrom,
			Active:             true,
			Conditions:         &model.DiscountConditions{NewCustomersOnly: true},
		},
		{
			ID:            "d-nomoq",
			Code:          "NOMOQ",
			Name:          "Minimum order waiver",
			Type:          model.DiscountKindNoMOQ,
			DiscountType:  model.DiscountTypeFixed,
			DiscountValue: decimal.Zero,
			ValidFrom:     validFrom,
			Active:        true,
			RemovesMOQ:    true,
		},
		{
			ID:            "d-shipfree",
			Code:          "SHIPFREE",
			Name:          "Free shipping",
			Type:          model.DiscountKindSeasonal,
			DiscountType:  model.DiscountTypeFreeShipping,
			DiscountValue: decimal.Zero,
			ValidFrom:     validFrom,
			Active:        true,
		},
		{
			ID:            "d-summer",
			Code:          "SUMMER2024",
			Name:          "Summer sale",
			Type:          model.DiscountKindSeasonal,
			DiscountType:  model.DiscountTypePercentage,
			DiscountValue: decimal.NewFromInt(20),
			ValidFrom:     validFrom,
			ValidUntil:    &expired,
			Active:        true,
		},
	}

	filePath := filepath.Join(dataDir, "discounts.jsonl.gz")
	if err := writeDiscountFile(filePath, codes); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d codes\n", filePath, len(codes))
}

func writeDiscountFile(filePath string, codes []model.DiscountCode) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for i := range codes {
		if err := encoder.Encode(&codes[i]); err != nil {
			return fmt.Errorf("failed to write discount code: %w", err)
		}
	}

	return nil
}
