package constants

import "strings"

// Sentinel is a fixed placeholder written instead of a missing or invalid field.
// Report consumers match on these exact strings, so never change their values.
type Sentinel string

const (
	CaseNotFound         Sentinel = "INTROUVABLE"
	CategoryUnspecified  Sentinel = "NON_PRECISE"
	JustificationMissing Sentinel = "N/A"

	CaseExtractionError Sentinel = "ERREUR_EXTRACTION"
	CaseInferenceError  Sentinel = "ERREUR_IA"
	CategoryUnknown     Sentinel = "INCONNU"

	ReasonUnreadablePDF   Sentinel = "PDF illisible"
	ReasonServiceDown     Sentinel = "Service IA injoignable"
	ReasonInvalidAIAnswer Sentinel = "Réponse IA invalide"
)

func (s Sentinel) String() string { return string(s) }

// Flag records whether the document mentions an open-day visit.
type Flag string

const (
	FlagYes Flag = "OUI"
	FlagNo  Flag = "NON"
)

// ParseFlag upper-cases s and accepts only the two literal tokens;
// anything else is FlagNo.
func ParseFlag(s string) Flag {
	switch f := Flag(strings.ToUpper(s)); f {
	case FlagYes, FlagNo:
		return f
	default:
		return FlagNo
	}
}

// Classification is the model's guess about who wrote the cover letter.
type Classification string

const (
	ClassAIProbable Classification = "PROBABLE_IA"
	ClassHuman      Classification = "HUMAIN"
	ClassUncertain  Classification = "INCERTAIN"
)

// ParseClassification is case-sensitive on purpose: the prompt asks for
// exact tokens and anything else is treated as uncertain.
func ParseClassification(s string) Classification {
	switch c := Classification(s); c {
	case ClassAIProbable, ClassHuman, ClassUncertain:
		return c
	default:
		return ClassUncertain
	}
}

// AllowedCategories lists the baccalaureate tracks the prompt advertises.
// They are not enforced when parsing.
var AllowedCategories = []string{"Général", "STI2D", "STL", "Autre"}
