package constants

import "strings"

// Bucket is one of the six semantic buckets a tabular column is filed under.
type Bucket string

const (
	PropertyInfo  Bucket = "property_info"
	FinancialData Bucket = "financial_data"
	UnitMix       Bucket = "unit_mix"
	Amenities     Bucket = "amenities"
	LocationData  Bucket = "location_data"
	OtherBucket   Bucket = "other"
)

var allBuckets = []Bucket{
	PropertyInfo,
	FinancialData,
	UnitMix,
	Amenities,
	LocationData,
	OtherBucket,
}

// AsBucketSlice returns the buckets in their canonical order.
func AsBucketSlice() []Bucket {
	out := make([]Bucket, len(allBuckets))
	copy(out, allBuckets)
	return out
}

// bucketKeywords maps each bucket to the substrings that claim a column name.
// Order matters: the first bucket whose keyword matches wins.
var bucketKeywords = []struct {
	Bucket   Bucket
	Keywords []string
}{
	{PropertyInfo, []string{"property", "name", "address", "year", "built", "size", "units"}},
	{FinancialData, []string{"price", "income", "expense", "rent", "rate", "cost", "value"}},
	{UnitMix, []string{"bed", "bath", "sqft", "mix", "floor plan", "floorplan", "floor-plan"}},
	{Amenities, []string{"amenity", "amenities", "feature", "facility"}},
	{LocationData, []string{"location", "market", "area", "region", "city", "state", "zip"}},
}

// BucketForColumn classifies a column name into one of the six buckets by
// case-insensitive substring matching. Unmatched names land in OtherBucket.
func BucketForColumn(name string) Bucket {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, bk := range bucketKeywords {
		for _, kw := range bk.Keywords {
			if strings.Contains(lower, kw) {
				return bk.Bucket
			}
		}
	}
	return OtherBucket
}
