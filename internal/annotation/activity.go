package annotation

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ActivityCode classifies what a worker is doing in a frame.
type ActivityCode string

const (
	ActivityConcretePouring        ActivityCode = "CP"
	ActivityInspection             ActivityCode = "IV"
	ActivityWalking                ActivityCode = "WAT"
	ActivityToolRetrieval          ActivityCode = "TRL"
	ActivityMaterialInstallation   ActivityCode = "CMI"
	ActivitySiteDocumentation      ActivityCode = "CSD"
	ActivityConditionDocumentation ActivityCode = "SCD"
)

type activityInfo struct {
	color       drawing.Color
	description string
}

var activityTable = map[ActivityCode]activityInfo{
	ActivityConcretePouring:        {drawing.ColorFromHex("FF6B6B"), "Concrete Pouring"},
	ActivityInspection:             {drawing.ColorFromHex("4ECDC4"), "Inspection & Verification"},
	ActivityWalking:                {drawing.ColorFromHex("45B7D1"), "Walking & Transportation"},
	ActivityToolRetrieval:          {drawing.ColorFromHex("96CEB4"), "Tool Retrieval"},
	ActivityMaterialInstallation:   {drawing.ColorFromHex("FFBE0B"), "Construction Material Installation"},
	ActivitySiteDocumentation:      {drawing.ColorFromHex("FF9F1C"), "Construction Site Documentation"},
	ActivityConditionDocumentation: {drawing.ColorFromHex("D4A373"), "Site Condition Documentation"},
}

// unknownActivityColor paints codes outside the closed set.
var unknownActivityColor = drawing.ColorFromHex("9CA3AF")

// Activities lists every known code in legend order.
func Activities() []ActivityCode {
	return []ActivityCode{
		ActivityConcretePouring,
		ActivityInspection,
		ActivityWalking,
		ActivityToolRetrieval,
		ActivityMaterialInstallation,
		ActivitySiteDocumentation,
		ActivityConditionDocumentation,
	}
}

// Known reports whether the code belongs to the fixed enumeration.
func (a ActivityCode) Known() bool {
	_, ok := activityTable[a]
	return ok
}

// Color returns the display colour; unknown codes are grey.
func (a ActivityCode) Color() drawing.Color {
	if info, ok := activityTable[a]; ok {
		return info.color
	}
	return unknownActivityColor
}

// Description returns the human readable label; unknown codes describe themselves.
func (a ActivityCode) Description() string {
	if info, ok := activityTable[a]; ok {
		return info.description
	}
	return string(a)
}
