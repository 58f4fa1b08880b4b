package services

import (
	"fmt"
	"strings"

	"realestate-agent/models"
	"realestate-agent/utils"
)

// Mapper converts raw heterogeneous listing payloads into canonical
// PropertyRecords. It tolerates both the flat shape produced by the
// extraction provider and the nested shape of the directory API.
type Mapper struct {
	logger *utils.Logger
}

// NewMapper creates a Mapper with the given logger.
func NewMapper(logger *utils.Logger) *Mapper {
	return &Mapper{logger: logger}
}

// MapAll maps every raw record it can. A malformed record is logged and
// skipped; it never aborts processing of the remaining records.
func (m *Mapper) MapAll(raw []map[string]any) []models.PropertyRecord {
	result := make([]models.PropertyRecord, 0, len(raw))

	for i, r := range raw {
		rec, err := m.mapOne(r)
		if err != nil {
			m.logger.Warn("[mapper] Dropping record %d: %v", i, err)
			continue
		}
		result = append(result, rec)
	}

	m.logger.Info("[mapper] Mapped %d → %d records (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

func (m *Mapper) mapOne(r map[string]any) (rec models.PropertyRecord, err error) {
	// Last-resort guard: a surprising payload shape must cost at most this
	// one record.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic while mapping: %v", p)
		}
	}()

	if len(r) == 0 {
		return rec, fmt.Errorf("empty record")
	}

	if _, nested := r["list_price"]; nested || hasNested(r) {
		return m.mapDirectory(r), nil
	}
	return m.mapFlat(r), nil
}

func hasNested(r map[string]any) bool {
	_, ok := r["location"].(map[string]any)
	return ok
}

// mapFlat handles the extraction-provider shape, where the schema already
// names the canonical fields.
func (m *Mapper) mapFlat(r map[string]any) models.PropertyRecord {
	price := SafeFloat(firstOf(r, "price", "Price"), 0)
	if price < 0 {
		price = 0
	}

	return models.PropertyRecord{
		BuildingName:  SafeString(firstOf(r, "building_name", "BuildingName")),
		PropertyType:  SafeString(firstOf(r, "property_type", "PropertyType")),
		Address:       SafeString(firstOf(r, "address", "Address", "location_address")),
		Price:         price,
		Description:   SafeString(r["description"]),
		SquareFeet:    SafeFloat(firstOf(r, "square_feet", "SqFt", "square_footage"), 0),
		Bedrooms:      SafeInt(r["bedrooms"], 0),
		Bathrooms:     SafeFloat(r["bathrooms"], 0),
		LotSize:       SafeString(r["lot_size"]),
		YearBuilt:     SafeInt(r["year_built"], 0),
		HOAFees:       SafeString(r["hoa_fees"]),
		PropertyTaxes: SafeString(r["property_taxes"]),
		MLSNumber:     SafeString(r["mls_number"]),
	}
}

// mapDirectory handles the directory-API shape, where address and description
// live in nested objects that may be partially or wholly absent.
func (m *Mapper) mapDirectory(r map[string]any) models.PropertyRecord {
	address := NestedMap(r, "location", "address")
	desc := NestedMap(r, "description")

	line := SafeString(address["line"])
	fullAddress := strings.TrimSpace(fmt.Sprintf("%s, %s, %s %s",
		line,
		SafeString(address["city"]),
		SafeString(address["state_code"]),
		SafeString(address["postal_code"])))

	price := SafeFloat(r["list_price"], 0)
	if price < 0 {
		price = 0
	}

	beds := SafeInt(desc["beds"], 0)
	baths := SafeFloat(desc["baths_consolidated"], 0)
	sqft := SafeFloat(desc["sqft"], 0)

	return models.PropertyRecord{
		BuildingName: line,
		PropertyType: SafeString(desc["type"]),
		Address:      fullAddress,
		Price:        price,
		Description: fmt.Sprintf("%s beds, %s baths, %s sqft",
			markerIfZeroInt(beds), markerIfZero(baths), markerIfZero(sqft)),
		SquareFeet:    sqft,
		Bedrooms:      beds,
		Bathrooms:     baths,
		LotSize:       SafeString(desc["lot_sqft"]),
		YearBuilt:     SafeInt(desc["year_built"], 0),
		HOAFees:       SafeString(r["hoa_fee"]),
		PropertyTaxes: SafeString(r["tax_amount"]),
		MLSNumber:     SafeString(r["listing_id"]),
	}
}

// MapTrends converts raw trend rows into LocationTrends, skipping rows with
// no neighborhood name.
func (m *Mapper) MapTrends(raw []map[string]any) []models.LocationTrend {
	result := make([]models.LocationTrend, 0, len(raw))
	for _, r := range raw {
		name := SafeString(firstOf(r, "neighborhood", "location"))
		if name == models.Unknown {
			m.logger.Warn("[mapper] Dropping trend row without neighborhood")
			continue
		}
		result = append(result, models.LocationTrend{
			Neighborhood: name,
			MedianPrice:  SafeFloat(firstOf(r, "median_price", "average_price"), 0),
			PricePerSqft: SafeFloat(r["price_per_sqft"], 0),
			YoYChange:    SafeFloat(firstOf(r, "yoy_change", "percent_increase"), 0),
			DaysOnMarket: SafeInt(r["days_on_market"], 0),
			SchoolRating: SafeFloat(r["school_rating"], 0),
		})
	}
	return result
}

func firstOf(r map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func markerIfZero(f float64) string {
	if f == 0 {
		return models.Unknown
	}
	return strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.1f", f), "0"), ".")
}

func markerIfZeroInt(n int) string {
	if n == 0 {
		return models.Unknown
	}
	return fmt.Sprintf("%d", n)
}
