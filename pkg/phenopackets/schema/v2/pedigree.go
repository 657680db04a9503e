package v2

import (
	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/registry"
)

// AffectedStatus is Pedigree.Person.AffectedStatus.
type AffectedStatus int32

const (
	Missing AffectedStatus = iota
	Unaffected
	Affected
)

func (s AffectedStatus) String() string { return AffectedStatusDesc.String(int32(s)) }

type Pedigree struct {
	Persons []*Person
}

func (*Pedigree) Descriptor() *registry.MessageDescriptor { return PedigreeDesc }

func (x *Pedigree) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(PedigreeDesc).Messages("persons", dynamic.ToMessages(x.Persons)).Done()
}

func (x *Pedigree) FromMessage(m *dynamic.Message) {
	x.Persons = dynamic.LoadAll[Person](m.GetMessages("persons"))
}

// Person is Pedigree.Person, one row of a PED file.
type Person struct {
	FamilyID       string
	IndividualID   string
	PaternalID     string
	MaternalID     string
	Sex            Sex
	AffectedStatus AffectedStatus
}

func (*Person) Descriptor() *registry.MessageDescriptor { return PersonDesc }

func (x *Person) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(PersonDesc).
		String("family_id", x.FamilyID).
		String("individual_id", x.IndividualID).
		String("paternal_id", x.PaternalID).
		String("maternal_id", x.MaternalID).
		Enum("sex", int32(x.Sex)).
		Enum("affected_status", int32(x.AffectedStatus)).
		Done()
}

func (x *Person) FromMessage(m *dynamic.Message) {
	x.FamilyID = m.GetString("family_id")
	x.IndividualID = m.GetString("individual_id")
	x.PaternalID = m.GetString("paternal_id")
	x.MaternalID = m.GetString("maternal_id")
	x.Sex = Sex(m.GetEnum("sex"))
	x.AffectedStatus = AffectedStatus(m.GetEnum("affected_status"))
}
