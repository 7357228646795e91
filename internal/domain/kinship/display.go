package kinship

var displayNames = map[RelationLabel]string{
	LabelSelf:               "You",
	LabelMother:             "Mother",
	LabelFather:             "Father",
	LabelSon:                "Son",
	LabelDaughter:           "Daughter",
	LabelBrother:            "Brother",
	LabelSister:             "Sister",
	LabelHusband:            "Husband",
	LabelWife:               "Wife",
	LabelGrandmother:        "Grandmother",
	LabelGrandfather:        "Grandfather",
	LabelGrandson:           "Grandson",
	LabelGranddaughter:      "Granddaughter",
	LabelUncle:              "Uncle",
	LabelAunt:               "Aunt",
	LabelCousin:             "Cousin",
	LabelNephew:             "Nephew",
	LabelNiece:              "Niece",
	LabelMotherInLaw:        "Mother-in-law",
	LabelFatherInLaw:        "Father-in-law",
	LabelBrotherInLaw:       "Brother-in-law",
	LabelSisterInLaw:        "Sister-in-law",
	LabelSonInLaw:           "Son-in-law",
	LabelDaughterInLaw:      "Daughter-in-law",
	LabelGreatGrandmother:   "Great-Grandmother",
	LabelGreatGrandfather:   "Great-Grandfather",
	LabelGreatGrandson:      "Great-Grandson",
	LabelGreatGranddaughter: "Great-Granddaughter",
	LabelParent:             "Parent",
	LabelChild:              "Child",
	LabelGrandparent:        "Grandparent",
	LabelGrandchild:         "Grandchild",
	LabelSibling:            "Sibling",
	LabelSpouse:             "Spouse",
	LabelGreatGrandparent:   "Great-Grandparent",
	LabelGreatGrandchild:    "Great-Grandchild",
	LabelParentSibling:      "Aunt/Uncle",
	LabelSiblingChild:       "Niece/Nephew",
	LabelParentInLaw:        "Parent-in-law",
	LabelSiblingInLaw:       "Sibling-in-law",
	LabelChildInLaw:         "Child-in-law",
}

// DisplayName returns the human-facing string for a label.
// Values outside the vocabulary are returned unchanged.
func DisplayName(l RelationLabel) string {
	if name, ok := displayNames[l]; ok {
		return name
	}
	return string(l)
}
