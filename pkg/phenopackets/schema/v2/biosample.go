package v2

import (
	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/registry"
)

// Biosample is a unit of biological material from which the substrate
// molecules for analysis were extracted.
type Biosample struct {
	ID                     string
	IndividualID           string
	DerivedFromID          string
	Description            string
	SampledTissue          *OntologyClass
	SampleType             *OntologyClass
	PhenotypicFeatures     []*PhenotypicFeature
	Measurements           []*Measurement
	Taxonomy               *OntologyClass
	TimeOfCollection       *TimeElement
	HistologicalDiagnosis  *OntologyClass
	TumorProgression       *OntologyClass
	TumorGrade             *OntologyClass
	PathologicalStage      *OntologyClass
	PathologicalTnmFinding []*OntologyClass
	DiagnosticMarkers      []*OntologyClass
	Procedure              *Procedure
	Files                  []*File
	MaterialSample         *OntologyClass
	SampleProcessing       *OntologyClass
	SampleStorage          *OntologyClass
}

func (*Biosample) Descriptor() *registry.MessageDescriptor { return BiosampleDesc }

func (x *Biosample) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(BiosampleDesc).
		String("id", x.ID).
		String("individual_id", x.IndividualID).
		String("derived_from_id", x.DerivedFromID).
		String("description", x.Description).
		Message("sampled_tissue", x.SampledTissue.ToMessage()).
		Message("sample_type", x.SampleType.ToMessage()).
		Messages("phenotypic_features", dynamic.ToMessages(x.PhenotypicFeatures)).
		Messages("measurements", dynamic.ToMessages(x.Measurements)).
		Message("taxonomy", x.Taxonomy.ToMessage()).
		Message("time_of_collection", x.TimeOfCollection.ToMessage()).
		Message("histological_diagnosis", x.HistologicalDiagnosis.ToMessage()).
		Message("tumor_progression", x.TumorProgression.ToMessage()).
		Message("tumor_grade", x.TumorGrade.ToMessage()).
		Message("pathological_stage", x.PathologicalStage.ToMessage()).
		Messages("pathological_tnm_finding", dynamic.ToMessages(x.PathologicalTnmFinding)).
		Messages("diagnostic_markers", dynamic.ToMessages(x.DiagnosticMarkers)).
		Message("procedure", x.Procedure.ToMessage()).
		Messages("files", dynamic.ToMessages(x.Files)).
		Message("material_sample", x.MaterialSample.ToMessage()).
		Message("sample_processing", x.SampleProcessing.ToMessage()).
		Message("sample_storage", x.SampleStorage.ToMessage()).
		Done()
}

func (x *Biosample) FromMessage(m *dynamic.Message) {
	x.ID = m.GetString("id")
	x.IndividualID = m.GetString("individual_id")
	x.DerivedFromID = m.GetString("derived_from_id")
	x.Description = m.GetString("description")
	x.SampledTissue = dynamic.Load[OntologyClass](m.GetMessage("sampled_tissue"))
	x.SampleType = dynamic.Load[OntologyClass](m.GetMessage("sample_type"))
	x.PhenotypicFeatures = dynamic.LoadAll[PhenotypicFeature](m.GetMessages("phenotypic_features"))
	x.Measurements = dynamic.LoadAll[Measurement](m.GetMessages("measurements"))
	x.Taxonomy = dynamic.Load[OntologyClass](m.GetMessage("taxonomy"))
	x.TimeOfCollection = dynamic.Load[TimeElement](m.GetMessage("time_of_collection"))
	x.HistologicalDiagnosis = dynamic.Load[OntologyClass](m.GetMessage("histological_diagnosis"))
	x.TumorProgression = dynamic.Load[OntologyClass](m.GetMessage("tumor_progression"))
	x.TumorGrade = dynamic.Load[OntologyClass](m.GetMessage("tumor_grade"))
	x.PathologicalStage = dynamic.Load[OntologyClass](m.GetMessage("pathological_stage"))
	x.PathologicalTnmFinding = dynamic.LoadAll[OntologyClass](m.GetMessages("pathological_tnm_finding"))
	x.DiagnosticMarkers = dynamic.LoadAll[OntologyClass](m.GetMessages("diagnostic_markers"))
	x.Procedure = dynamic.Load[Procedure](m.GetMessage("procedure"))
	x.Files = dynamic.LoadAll[File](m.GetMessages("files"))
	x.MaterialSample = dynamic.Load[OntologyClass](m.GetMessage("material_sample"))
	x.SampleProcessing = dynamic.Load[OntologyClass](m.GetMessage("sample_processing"))
	x.SampleStorage = dynamic.Load[OntologyClass](m.GetMessage("sample_storage"))
}

type Disease struct {
	Term               *OntologyClass
	Excluded           bool
	Onset              *TimeElement
	Resolution         *TimeElement
	DiseaseStage       []*OntologyClass
	ClinicalTnmFinding []*OntologyClass
	PrimarySite        *OntologyClass
	Laterality         *OntologyClass
}

func (*Disease) Descriptor() *registry.MessageDescriptor { return DiseaseDesc }

func (x *Disease) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(DiseaseDesc).
		Message("term", x.Term.ToMessage()).
		Bool("excluded", x.Excluded).
		Message("onset", x.Onset.ToMessage()).
		Message("resolution", x.Resolution.ToMessage()).
		Messages("disease_stage", dynamic.ToMessages(x.DiseaseStage)).
		Messages("clinical_tnm_finding", dynamic.ToMessages(x.ClinicalTnmFinding)).
		Message("primary_site", x.PrimarySite.ToMessage()).
		Message("laterality", x.Laterality.ToMessage()).
		Done()
}

func (x *Disease) FromMessage(m *dynamic.Message) {
	x.Term = dynamic.Load[OntologyClass](m.GetMessage("term"))
	x.Excluded = m.GetBool("excluded")
	x.Onset = dynamic.Load[TimeElement](m.GetMessage("onset"))
	x.Resolution = dynamic.Load[TimeElement](m.GetMessage("resolution"))
	x.DiseaseStage = dynamic.LoadAll[OntologyClass](m.GetMessages("disease_stage"))
	x.ClinicalTnmFinding = dynamic.LoadAll[OntologyClass](m.GetMessages("clinical_tnm_finding"))
	x.PrimarySite = dynamic.Load[OntologyClass](m.GetMessage("primary_site"))
	x.Laterality = dynamic.Load[OntologyClass](m.GetMessage("laterality"))
}
