// File: internal/model/category.go
package model

import "fmt"

// Category groups uploads by business purpose. The set is closed: routes and
// storage accept only these tags, never free-text slots.
type Category string

const (
	CategoryAssetMaster   Category = "asset_master"
	CategoryMaintenance   Category = "maintenance"
	CategoryRunningStatus Category = "running_status"
	CategoryUAUC          Category = "uauc"
	CategoryHSD           Category = "hsd"
	CategoryEMFC          Category = "emfc"
	CategoryGPSLog        Category = "gpslog"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryAssetMaster,
	CategoryMaintenance,
	CategoryRunningStatus,
	CategoryUAUC,
	CategoryHSD,
	CategoryEMFC,
	CategoryGPSLog,
}

// ParseCategory validates a raw tag against the closed set.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

func (c Category) String() string { return string(c) }
