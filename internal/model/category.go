package model

import "fmt"

// Group is the parent bucket a category rolls into.
type Group string

// Parent buckets.
const (
	GroupCostOfSales Group = "cost-of-sales"
	GroupOpex        Group = "opex"
)

// Groups lists the parent buckets in display order.
var Groups = []Group{GroupCostOfSales, GroupOpex}

// Fixed subgroup names used for rollup partitioning.
const (
	SubgroupCompensation = "Compensation & Benefits"
	SubgroupOther        = "Other"
)

// Label returns the human-readable group name.
func (g Group) Label() string {
	switch g {
	case GroupCostOfSales:
		return "Cost of Sales"
	case GroupOpex:
		return "Operating Expenses"
	default:
		return string(g)
	}
}

// ParseGroup validates a group identifier.
func ParseGroup(s string) (Group, error) {
	switch Group(s) {
	case GroupCostOfSales, GroupOpex:
		return Group(s), nil
	}
	return "", fmt.Errorf("unknown group %q (want %q or %q)", s, GroupCostOfSales, GroupOpex)
}

// Category is externally supplied configuration for one spend line.
// Contra only changes the displayed sign; aggregation uses stored values.
type Category struct {
	ID       string
	Name     string
	Group    Group
	Subgroup string
	Contra   bool
}

// DisplaySign returns -1 for contra categories and 1 otherwise.
func (c Category) DisplaySign() int {
	if c.Contra {
		return -1
	}
	return 1
}
