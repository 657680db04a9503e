package v2

import (
	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/registry"
)

type DrugType int32

const (
	UnknownDrugType DrugType = iota
	Prescription
	EHRMedicationList
	AdministrationRelatedToProcedure
)

func (d DrugType) String() string { return DrugTypeDesc.String(int32(d)) }

// RegimenStatus is TherapeuticRegimen.RegimenStatus.
type RegimenStatus int32

const (
	RegimenUnknown RegimenStatus = iota
	RegimenStarted
	RegimenCompleted
	RegimenDiscontinued
)

func (s RegimenStatus) String() string { return RegimenStatusDesc.String(int32(s)) }

// MedicalAction is a procedure, treatment, radiation therapy or
// therapeutic regimen, with its target and outcome.
type MedicalAction struct {
	Action                     MedicalActionKind
	TreatmentTarget            *OntologyClass
	TreatmentIntent            *OntologyClass
	ResponseToTreatment        *OntologyClass
	AdverseEvents              []*OntologyClass
	TreatmentTerminationReason *OntologyClass
}

type MedicalActionKind interface{ isMedicalActionKind() }

type ActionProcedure struct{ Procedure *Procedure }
type ActionTreatment struct{ Treatment *Treatment }
type ActionRadiationTherapy struct{ RadiationTherapy *RadiationTherapy }
type ActionTherapeuticRegimen struct{ TherapeuticRegimen *TherapeuticRegimen }

func (ActionProcedure) isMedicalActionKind()          {}
func (ActionTreatment) isMedicalActionKind()          {}
func (ActionRadiationTherapy) isMedicalActionKind()   {}
func (ActionTherapeuticRegimen) isMedicalActionKind() {}

func (*MedicalAction) Descriptor() *registry.MessageDescriptor { return MedicalActionDesc }

func (x *MedicalAction) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	b := dynamic.Build(MedicalActionDesc)
	switch a := x.Action.(type) {
	case ActionProcedure:
		b.Message("procedure", a.Procedure.ToMessage())
	case ActionTreatment:
		b.Message("treatment", a.Treatment.ToMessage())
	case ActionRadiationTherapy:
		b.Message("radiation_therapy", a.RadiationTherapy.ToMessage())
	case ActionTherapeuticRegimen:
		b.Message("therapeutic_regimen", a.TherapeuticRegimen.ToMessage())
	}
	return b.
		Message("treatment_target", x.TreatmentTarget.ToMessage()).
		Message("treatment_intent", x.TreatmentIntent.ToMessage()).
		Message("response_to_treatment", x.ResponseToTreatment.ToMessage()).
		Messages("adverse_events", dynamic.ToMessages(x.AdverseEvents)).
		Message("treatment_termination_reason", x.TreatmentTerminationReason.ToMessage()).
		Done()
}

func (x *MedicalAction) FromMessage(m *dynamic.Message) {
	switch m.Which("action") {
	case "procedure":
		x.Action = ActionProcedure{Procedure: dynamic.Load[Procedure](m.GetMessage("procedure"))}
	case "treatment":
		x.Action = ActionTreatment{Treatment: dynamic.Load[Treatment](m.GetMessage("treatment"))}
	case "radiation_therapy":
		x.Action = ActionRadiationTherapy{RadiationTherapy: dynamic.Load[RadiationTherapy](m.GetMessage("radiation_therapy"))}
	case "therapeutic_regimen":
		x.Action = ActionTherapeuticRegimen{TherapeuticRegimen: dynamic.Load[TherapeuticRegimen](m.GetMessage("therapeutic_regimen"))}
	}
	x.TreatmentTarget = dynamic.Load[OntologyClass](m.GetMessage("treatment_target"))
	x.TreatmentIntent = dynamic.Load[OntologyClass](m.GetMessage("treatment_intent"))
	x.ResponseToTreatment = dynamic.Load[OntologyClass](m.GetMessage("response_to_treatment"))
	x.AdverseEvents = dynamic.LoadAll[OntologyClass](m.GetMessages("adverse_events"))
	x.TreatmentTerminationReason = dynamic.Load[OntologyClass](m.GetMessage("treatment_termination_reason"))
}

type Treatment struct {
	Agent                 *OntologyClass
	RouteOfAdministration *OntologyClass
	DoseIntervals         []*DoseInterval
	DrugType              DrugType
	CumulativeDose        *Quantity
}

func (*Treatment) Descriptor() *registry.MessageDescriptor { return TreatmentDesc }

func (x *Treatment) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(TreatmentDesc).
		Message("agent", x.Agent.ToMessage()).
		Message("route_of_administration", x.RouteOfAdministration.ToMessage()).
		Messages("dose_intervals", dynamic.ToMessages(x.DoseIntervals)).
		Enum("drug_type", int32(x.DrugType)).
		Message("cumulative_dose", x.CumulativeDose.ToMessage()).
		Done()
}

func (x *Treatment) FromMessage(m *dynamic.Message) {
	x.Agent = dynamic.Load[OntologyClass](m.GetMessage("agent"))
	x.RouteOfAdministration = dynamic.Load[OntologyClass](m.GetMessage("route_of_administration"))
	x.DoseIntervals = dynamic.LoadAll[DoseInterval](m.GetMessages("dose_intervals"))
	x.DrugType = DrugType(m.GetEnum("drug_type"))
	x.CumulativeDose = dynamic.Load[Quantity](m.GetMessage("cumulative_dose"))
}

type DoseInterval struct {
	Quantity          *Quantity
	ScheduleFrequency *OntologyClass
	Interval          *TimeInterval
}

func (*DoseInterval) Descriptor() *registry.MessageDescriptor { return DoseIntervalDesc }

func (x *DoseInterval) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(DoseIntervalDesc).
		Message("quantity", x.Quantity.ToMessage()).
		Message("schedule_frequency", x.ScheduleFrequency.ToMessage()).
		Message("interval", x.Interval.ToMessage()).
		Done()
}

func (x *DoseInterval) FromMessage(m *dynamic.Message) {
	x.Quantity = dynamic.Load[Quantity](m.GetMessage("quantity"))
	x.ScheduleFrequency = dynamic.Load[OntologyClass](m.GetMessage("schedule_frequency"))
	x.Interval = dynamic.Load[TimeInterval](m.GetMessage("interval"))
}

type RadiationTherapy struct {
	Modality  *OntologyClass
	BodySite  *OntologyClass
	Dosage    int32
	Fractions int32
}

func (*RadiationTherapy) Descriptor() *registry.MessageDescriptor { return RadiationTherapyDesc }

func (x *RadiationTherapy) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(RadiationTherapyDesc).
		Message("modality", x.Modality.ToMessage()).
		Message("body_site", x.BodySite.ToMessage()).
		Int("dosage", int64(x.Dosage)).
		Int("fractions", int64(x.Fractions)).
		Done()
}

func (x *RadiationTherapy) FromMessage(m *dynamic.Message) {
	x.Modality = dynamic.Load[OntologyClass](m.GetMessage("modality"))
	x.BodySite = dynamic.Load[OntologyClass](m.GetMessage("body_site"))
	x.Dosage = int32(m.GetInt("dosage"))
	x.Fractions = int32(m.GetInt("fractions"))
}

// TherapeuticRegimen is identified by an external reference or an
// ontology term.
type TherapeuticRegimen struct {
	Identifier    RegimenIdentifier
	StartTime     *TimeElement
	EndTime       *TimeElement
	RegimenStatus RegimenStatus
}

type RegimenIdentifier interface{ isRegimenIdentifier() }

type RegimenExternalReference struct{ ExternalReference *ExternalReference }
type RegimenOntologyClass struct{ OntologyClass *OntologyClass }

func (RegimenExternalReference) isRegimenIdentifier() {}
func (RegimenOntologyClass) isRegimenIdentifier()     {}

func (*TherapeuticRegimen) Descriptor() *registry.MessageDescriptor { return TherapeuticRegimenDesc }

func (x *TherapeuticRegimen) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	b := dynamic.Build(TherapeuticRegimenDesc)
	switch id := x.Identifier.(type) {
	case RegimenExternalReference:
		b.Message("external_reference", id.ExternalReference.ToMessage())
	case RegimenOntologyClass:
		b.Message("ontology_class", id.OntologyClass.ToMessage())
	}
	return b.
		Message("start_time", x.StartTime.ToMessage()).
		Message("end_time", x.EndTime.ToMessage()).
		Enum("regimen_status", int32(x.RegimenStatus)).
		Done()
}

func (x *TherapeuticRegimen) FromMessage(m *dynamic.Message) {
	switch m.Which("identifier") {
	case "external_reference":
		x.Identifier = RegimenExternalReference{ExternalReference: dynamic.Load[ExternalReference](m.GetMessage("external_reference"))}
	case "ontology_class":
		x.Identifier = RegimenOntologyClass{OntologyClass: dynamic.Load[OntologyClass](m.GetMessage("ontology_class"))}
	}
	x.StartTime = dynamic.Load[TimeElement](m.GetMessage("start_time"))
	x.EndTime = dynamic.Load[TimeElement](m.GetMessage("end_time"))
	x.RegimenStatus = RegimenStatus(m.GetEnum("regimen_status"))
}
