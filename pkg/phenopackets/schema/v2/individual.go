package v2

import (
	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/registry"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type Sex int32

const (
	UnknownSex Sex = iota
	Female
	Male
	OtherSex
)

func (s Sex) String() string { return SexDesc.String(int32(s)) }

type KaryotypicSex int32

const (
	UnknownKaryotype KaryotypicSex = iota
	XX
	XY
	XO
	XXY
	XXX
	XXYY
	XXXY
	XXXX
	XYY
	OtherKaryotype
)

func (s KaryotypicSex) String() string { return KaryotypicSexDesc.String(int32(s)) }

// VitalStatusStatus is VitalStatus.Status.
type VitalStatusStatus int32

const (
	VitalStatusUnknown VitalStatusStatus = iota
	Alive
	Deceased
)

func (s VitalStatusStatus) String() string { return VitalStatusStatusDesc.String(int32(s)) }

// Individual is the subject of a phenopacket.
type Individual struct {
	ID                  string
	AlternateIDs        []string
	DateOfBirth         *timestamppb.Timestamp
	TimeAtLastEncounter *TimeElement
	VitalStatus         *VitalStatus
	Sex                 Sex
	KaryotypicSex       KaryotypicSex
	Gender              *OntologyClass
	Taxonomy            *OntologyClass
}

func (*Individual) Descriptor() *registry.MessageDescriptor { return IndividualDesc }

func (x *Individual) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(IndividualDesc).
		String("id", x.ID).
		Strings("alternate_ids", x.AlternateIDs).
		Timestamp("date_of_birth", x.DateOfBirth).
		Message("time_at_last_encounter", x.TimeAtLastEncounter.ToMessage()).
		Message("vital_status", x.VitalStatus.ToMessage()).
		Enum("sex", int32(x.Sex)).
		Enum("karyotypic_sex", int32(x.KaryotypicSex)).
		Message("gender", x.Gender.ToMessage()).
		Message("taxonomy", x.Taxonomy.ToMessage()).
		Done()
}

func (x *Individual) FromMessage(m *dynamic.Message) {
	x.ID = m.GetString("id")
	x.AlternateIDs = m.GetStrings("alternate_ids")
	x.DateOfBirth = m.GetTimestamp("date_of_birth")
	x.TimeAtLastEncounter = dynamic.Load[TimeElement](m.GetMessage("time_at_last_encounter"))
	x.VitalStatus = dynamic.Load[VitalStatus](m.GetMessage("vital_status"))
	x.Sex = Sex(m.GetEnum("sex"))
	x.KaryotypicSex = KaryotypicSex(m.GetEnum("karyotypic_sex"))
	x.Gender = dynamic.Load[OntologyClass](m.GetMessage("gender"))
	x.Taxonomy = dynamic.Load[OntologyClass](m.GetMessage("taxonomy"))
}

type VitalStatus struct {
	Status             VitalStatusStatus
	TimeOfDeath        *TimeElement
	CauseOfDeath       *OntologyClass
	SurvivalTimeInDays uint32
}

func (*VitalStatus) Descriptor() *registry.MessageDescriptor { return VitalStatusDesc }

func (x *VitalStatus) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(VitalStatusDesc).
		Enum("status", int32(x.Status)).
		Message("time_of_death", x.TimeOfDeath.ToMessage()).
		Message("cause_of_death", x.CauseOfDeath.ToMessage()).
		Uint("survival_time_in_days", uint64(x.SurvivalTimeInDays)).
		Done()
}

func (x *VitalStatus) FromMessage(m *dynamic.Message) {
	x.Status = VitalStatusStatus(m.GetEnum("status"))
	x.TimeOfDeath = dynamic.Load[TimeElement](m.GetMessage("time_of_death"))
	x.CauseOfDeath = dynamic.Load[OntologyClass](m.GetMessage("cause_of_death"))
	x.SurvivalTimeInDays = uint32(m.GetUint("survival_time_in_days"))
}
