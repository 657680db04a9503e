package v2

import (
	"errors"
	"fmt"

	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/registry"
)

var (
	ErrMissingMetaData = errors.New("v2: meta_data is required")
	ErrMissingID       = errors.New("v2: id is required")
)

// Phenopacket aggregates the phenotypic, clinical and genomic findings of
// one subject.
type Phenopacket struct {
	ID                 string
	Subject            *Individual
	PhenotypicFeatures []*PhenotypicFeature
	Measurements       []*Measurement
	Biosamples         []*Biosample
	Interpretations    []*Interpretation
	Diseases           []*Disease
	MedicalActions     []*MedicalAction
	Files              []*File
	MetaData           *MetaData
}

func (*Phenopacket) Descriptor() *registry.MessageDescriptor { return PhenopacketDesc }

func (x *Phenopacket) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(PhenopacketDesc).
		String("id", x.ID).
		Message("subject", x.Subject.ToMessage()).
		Messages("phenotypic_features", dynamic.ToMessages(x.PhenotypicFeatures)).
		Messages("measurements", dynamic.ToMessages(x.Measurements)).
		Messages("biosamples", dynamic.ToMessages(x.Biosamples)).
		Messages("interpretations", dynamic.ToMessages(x.Interpretations)).
		Messages("diseases", dynamic.ToMessages(x.Diseases)).
		Messages("medical_actions", dynamic.ToMessages(x.MedicalActions)).
		Messages("files", dynamic.ToMessages(x.Files)).
		Message("meta_data", x.MetaData.ToMessage()).
		Done()
}

func (x *Phenopacket) FromMessage(m *dynamic.Message) {
	x.ID = m.GetString("id")
	x.Subject = dynamic.Load[Individual](m.GetMessage("subject"))
	x.PhenotypicFeatures = dynamic.LoadAll[PhenotypicFeature](m.GetMessages("phenotypic_features"))
	x.Measurements = dynamic.LoadAll[Measurement](m.GetMessages("measurements"))
	x.Biosamples = dynamic.LoadAll[Biosample](m.GetMessages("biosamples"))
	x.Interpretations = dynamic.LoadAll[Interpretation](m.GetMessages("interpretations"))
	x.Diseases = dynamic.LoadAll[Disease](m.GetMessages("diseases"))
	x.MedicalActions = dynamic.LoadAll[MedicalAction](m.GetMessages("medical_actions"))
	x.Files = dynamic.LoadAll[File](m.GetMessages("files"))
	x.MetaData = dynamic.Load[MetaData](m.GetMessage("meta_data"))
}

type Family struct {
	ID                   string
	Proband              *Phenopacket
	Relatives            []*Phenopacket
	Pedigree             *Pedigree
	Files                []*File
	MetaData             *MetaData
	ConsanguinousParents bool
}

func (*Family) Descriptor() *registry.MessageDescriptor { return FamilyDesc }

func (x *Family) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(FamilyDesc).
		String("id", x.ID).
		Message("proband", x.Proband.ToMessage()).
		Messages("relatives", dynamic.ToMessages(x.Relatives)).
		Message("pedigree", x.Pedigree.ToMessage()).
		Messages("files", dynamic.ToMessages(x.Files)).
		Message("meta_data", x.MetaData.ToMessage()).
		Bool("consanguinous_parents", x.ConsanguinousParents).
		Done()
}

func (x *Family) FromMessage(m *dynamic.Message) {
	x.ID = m.GetString("id")
	x.Proband = dynamic.Load[Phenopacket](m.GetMessage("proband"))
	x.Relatives = dynamic.LoadAll[Phenopacket](m.GetMessages("relatives"))
	x.Pedigree = dynamic.Load[Pedigree](m.GetMessage("pedigree"))
	x.Files = dynamic.LoadAll[File](m.GetMessages("files"))
	x.MetaData = dynamic.Load[MetaData](m.GetMessage("meta_data"))
	x.ConsanguinousParents = m.GetBool("consanguinous_parents")
}

type Cohort struct {
	ID          string
	Description string
	Members     []*Phenopacket
	Files       []*File
	MetaData    *MetaData
}

func (*Cohort) Descriptor() *registry.MessageDescriptor { return CohortDesc }

func (x *Cohort) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(CohortDesc).
		String("id", x.ID).
		String("description", x.Description).
		Messages("members", dynamic.ToMessages(x.Members)).
		Messages("files", dynamic.ToMessages(x.Files)).
		Message("meta_data", x.MetaData.ToMessage()).
		Done()
}

func (x *Cohort) FromMessage(m *dynamic.Message) {
	x.ID = m.GetString("id")
	x.Description = m.GetString("description")
	x.Members = dynamic.LoadAll[Phenopacket](m.GetMessages("members"))
	x.Files = dynamic.LoadAll[File](m.GetMessages("files"))
	x.MetaData = dynamic.Load[MetaData](m.GetMessage("meta_data"))
}

// CheckWellFormed applies the caller policy for stored and exchanged
// packets: an id and a meta_data block. The codecs never enforce it.
func CheckWellFormed(p *Phenopacket) error {
	if p == nil {
		return fmt.Errorf("check phenopacket: %w", ErrMissingID)
	}
	if p.ID == "" {
		return fmt.Errorf("check phenopacket: %w", ErrMissingID)
	}
	if p.MetaData == nil {
		return fmt.Errorf("check phenopacket %q: %w", p.ID, ErrMissingMetaData)
	}
	return nil
}
