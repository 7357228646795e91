// Package kinship computes human-readable relation labels between people of one family.
//
// The engine is pure: it takes a snapshot of persons and parent/spouse edges, builds a
// throwaway adjacency graph, and labels everyone reachable from a chosen root.
package kinship

import "github.com/Sid-0307/Kudumbam/internal/domain/entities"

// RelationLabel names how a person relates to the root of a computation.
type RelationLabel string

const (
	LabelSelf RelationLabel = "self"

	LabelMother RelationLabel = "mother"
	LabelFather RelationLabel = "father"
	LabelParent RelationLabel = "parent"

	LabelSon      RelationLabel = "son"
	LabelDaughter RelationLabel = "daughter"
	LabelChild    RelationLabel = "child"

	LabelBrother RelationLabel = "brother"
	LabelSister  RelationLabel = "sister"
	LabelSibling RelationLabel = "sibling"

	LabelHusband RelationLabel = "husband"
	LabelWife    RelationLabel = "wife"
	LabelSpouse  RelationLabel = "spouse"

	LabelGrandmother RelationLabel = "grandmother"
	LabelGrandfather RelationLabel = "grandfather"
	LabelGrandparent RelationLabel = "grandparent"

	LabelGrandson      RelationLabel = "grandson"
	LabelGranddaughter RelationLabel = "granddaughter"
	LabelGrandchild    RelationLabel = "grandchild"

	LabelGreatGrandmother RelationLabel = "great-grandmother"
	LabelGreatGrandfather RelationLabel = "great-grandfather"
	LabelGreatGrandparent RelationLabel = "great-grandparent"

	LabelGreatGrandson      RelationLabel = "great-grandson"
	LabelGreatGranddaughter RelationLabel = "great-granddaughter"
	LabelGreatGrandchild    RelationLabel = "great-grandchild"

	LabelUncle         RelationLabel = "uncle"
	LabelAunt          RelationLabel = "aunt"
	LabelParentSibling RelationLabel = "parent-sibling"

	LabelNephew       RelationLabel = "nephew"
	LabelNiece        RelationLabel = "niece"
	LabelSiblingChild RelationLabel = "sibling-child"

	LabelCousin RelationLabel = "cousin"

	LabelMotherInLaw RelationLabel = "mother-in-law"
	LabelFatherInLaw RelationLabel = "father-in-law"
	LabelParentInLaw RelationLabel = "parent-in-law"

	LabelBrotherInLaw RelationLabel = "brother-in-law"
	LabelSisterInLaw  RelationLabel = "sister-in-law"
	LabelSiblingInLaw RelationLabel = "sibling-in-law"

	LabelSonInLaw      RelationLabel = "son-in-law"
	LabelDaughterInLaw RelationLabel = "daughter-in-law"
	LabelChildInLaw    RelationLabel = "child-in-law"
)

// tier groups the gendered variants of one relation with its gender-neutral fallback.
type tier struct {
	male    RelationLabel
	female  RelationLabel
	unknown RelationLabel
}

func (t tier) forGender(g entities.Gender) RelationLabel {
	switch g {
	case entities.GenderMale:
		return t.male
	case entities.GenderFemale:
		return t.female
	default:
		return t.unknown
	}
}

var (
	parentTier           = tier{male: LabelFather, female: LabelMother, unknown: LabelParent}
	childTier            = tier{male: LabelSon, female: LabelDaughter, unknown: LabelChild}
	siblingTier          = tier{male: LabelBrother, female: LabelSister, unknown: LabelSibling}
	grandparentTier      = tier{male: LabelGrandfather, female: LabelGrandmother, unknown: LabelGrandparent}
	grandchildTier       = tier{male: LabelGrandson, female: LabelGranddaughter, unknown: LabelGrandchild}
	greatGrandparentTier = tier{male: LabelGreatGrandfather, female: LabelGreatGrandmother, unknown: LabelGreatGrandparent}
	greatGrandchildTier  = tier{male: LabelGreatGrandson, female: LabelGreatGranddaughter, unknown: LabelGreatGrandchild}
	parentSiblingTier    = tier{male: LabelUncle, female: LabelAunt, unknown: LabelParentSibling}
	siblingChildTier     = tier{male: LabelNephew, female: LabelNiece, unknown: LabelSiblingChild}
	parentInLawTier      = tier{male: LabelFatherInLaw, female: LabelMotherInLaw, unknown: LabelParentInLaw}
	siblingInLawTier     = tier{male: LabelBrotherInLaw, female: LabelSisterInLaw, unknown: LabelSiblingInLaw}
	childInLawTier       = tier{male: LabelSonInLaw, female: LabelDaughterInLaw, unknown: LabelChildInLaw}
)

// ancestorLabel picks the label for a parent discovered from a node at generation gen.
func ancestorLabel(gen int, g entities.Gender) RelationLabel {
	switch gen {
	case 0:
		return parentTier.forGender(g)
	case 1:
		return grandparentTier.forGender(g)
	case 2:
		return greatGrandparentTier.forGender(g)
	default:
		return LabelParent
	}
}

// descendantLabel picks the label for a child discovered from a node at generation gen.
func descendantLabel(gen int, g entities.Gender) RelationLabel {
	switch gen {
	case -1:
		return grandchildTier.forGender(g)
	case -2:
		return greatGrandchildTier.forGender(g)
	default:
		return childTier.forGender(g)
	}
}

// spouseLabel picks the label for a spouse discovered at generation gen. Only the
// root's own spouse gets a gendered label, and only when both genders are known and differ.
func spouseLabel(gen int, root, spouse entities.Gender) RelationLabel {
	if gen != 0 {
		return LabelSpouse
	}
	switch {
	case root == entities.GenderMale && spouse == entities.GenderFemale:
		return LabelWife
	case root == entities.GenderFemale && spouse == entities.GenderMale:
		return LabelHusband
	default:
		return LabelSpouse
	}
}
