package v2

import (
	vrsatile "github.com/danmuck/phenopackets/pkg/ga4gh/vrsatile/v1"
	"github.com/danmuck/phenopackets/pkg/phenopackets/schema/v2/base"
	"github.com/danmuck/phenopackets/pkg/registry"
)

const (
	// Package is the namespace of the top-level aggregates.
	Package = "org.phenopackets.schema.v2"
	// CorePackage is the namespace of every building block.
	CorePackage = base.Package

	// SchemaVersion is written to MetaData.phenopacket_schema_version.
	SchemaVersion = "2.0"
)

func core(s string) string { return registry.FullName(CorePackage, s) }

func top(s string) string { return registry.FullName(Package, s) }

func enumValues(names ...string) []registry.EnumValue {
	out := make([]registry.EnumValue, len(names))
	for i, n := range names {
		out[i] = registry.EnumValue{Name: n, Number: int32(i)}
	}
	return out
}

const ontologyClass = base.OntologyClassName

// enums
var (
	SexDesc = registry.NewEnumDescriptor(CorePackage, "Sex", "phenopackets/schema/v2/core/individual.proto",
		enumValues("UNKNOWN_SEX", "FEMALE", "MALE", "OTHER_SEX")...)
	KaryotypicSexDesc = registry.NewEnumDescriptor(CorePackage, "KaryotypicSex", "phenopackets/schema/v2/core/individual.proto",
		enumValues("UNKNOWN_KARYOTYPE", "XX", "XY", "XO", "XXY", "XXX", "XXYY", "XXXY", "XXXX", "XYY", "OTHER_KARYOTYPE")...)
	VitalStatusStatusDesc = registry.NewEnumDescriptor(CorePackage, "VitalStatus.Status", "phenopackets/schema/v2/core/individual.proto",
		enumValues("UNKNOWN_STATUS", "ALIVE", "DECEASED")...)
	ProgressStatusDesc = registry.NewEnumDescriptor(CorePackage, "Interpretation.ProgressStatus", "phenopackets/schema/v2/core/interpretation.proto",
		enumValues("UNKNOWN_PROGRESS", "IN_PROGRESS", "COMPLETED", "SOLVED", "UNSOLVED")...)
	InterpretationStatusDesc = registry.NewEnumDescriptor(CorePackage, "GenomicInterpretation.InterpretationStatus", "phenopackets/schema/v2/core/interpretation.proto",
		enumValues("UNKNOWN_STATUS", "REJECTED", "CANDIDATE", "CONTRIBUTORY", "CAUSATIVE")...)
	AcmgPathogenicityClassificationDesc = registry.NewEnumDescriptor(CorePackage, "AcmgPathogenicityClassification", "phenopackets/schema/v2/core/interpretation.proto",
		enumValues("NOT_PROVIDED", "BENIGN", "LIKELY_BENIGN", "UNCERTAIN_SIGNIFICANCE", "LIKELY_PATHOGENIC", "PATHOGENIC")...)
	TherapeuticActionabilityDesc = registry.NewEnumDescriptor(CorePackage, "TherapeuticActionability", "phenopackets/schema/v2/core/interpretation.proto",
		enumValues("UNKNOWN_ACTIONABILITY", "NOT_ACTIONABLE", "ACTIONABLE")...)
	DrugTypeDesc = registry.NewEnumDescriptor(CorePackage, "DrugType", "phenopackets/schema/v2/core/medical_action.proto",
		enumValues("UNKNOWN_DRUG_TYPE", "PRESCRIPTION", "EHR_MEDICATION_LIST", "ADMINISTRATION_RELATED_TO_PROCEDURE")...)
	RegimenStatusDesc = registry.NewEnumDescriptor(CorePackage, "TherapeuticRegimen.RegimenStatus", "phenopackets/schema/v2/core/medical_action.proto",
		enumValues("UNKNOWN_STATUS", "STARTED", "COMPLETED", "DISCONTINUED")...)
	AffectedStatusDesc = registry.NewEnumDescriptor(CorePackage, "Pedigree.Person.AffectedStatus", "phenopackets/schema/v2/core/pedigree.proto",
		enumValues("MISSING", "UNAFFECTED", "AFFECTED")...)
)

// individual.proto
var (
	IndividualDesc = registry.NewMessageDescriptor(CorePackage, "Individual", "phenopackets/schema/v2/core/individual.proto",
		registry.Field("id", 1, registry.KindString),
		registry.Field("alternate_ids", 2, registry.KindString).Repeated(),
		registry.MessageField("date_of_birth", 3, registry.TimestampName),
		registry.MessageField("time_at_last_encounter", 4, core("TimeElement")),
		registry.MessageField("vital_status", 5, core("VitalStatus")),
		registry.EnumField("sex", 6, core("Sex")),
		registry.EnumField("karyotypic_sex", 7, core("KaryotypicSex")),
		registry.MessageField("gender", 8, ontologyClass),
		registry.MessageField("taxonomy", 9, ontologyClass),
	)
	VitalStatusDesc = registry.NewMessageDescriptor(CorePackage, "VitalStatus", "phenopackets/schema/v2/core/individual.proto",
		registry.EnumField("status", 1, core("VitalStatus.Status")),
		registry.MessageField("time_of_death", 2, core("TimeElement")),
		registry.MessageField("cause_of_death", 3, ontologyClass),
		registry.Field("survival_time_in_days", 4, registry.KindUint32),
	)
)

// phenotypic_feature.proto, measurement.proto
var (
	PhenotypicFeatureDesc = registry.NewMessageDescriptor(CorePackage, "PhenotypicFeature", "phenopackets/schema/v2/core/phenotypic_feature.proto",
		registry.Field("description", 1, registry.KindString),
		registry.MessageField("type", 2, ontologyClass),
		registry.Field("excluded", 3, registry.KindBool),
		registry.MessageField("severity", 4, ontologyClass),
		registry.MessageField("modifiers", 5, ontologyClass).Repeated(),
		registry.MessageField("onset", 6, core("TimeElement")),
		registry.MessageField("resolution", 7, core("TimeElement")),
		registry.MessageField("evidence", 8, core("Evidence")).Repeated(),
	)
	MeasurementDesc = registry.NewMessageDescriptor(CorePackage, "Measurement", "phenopackets/schema/v2/core/measurement.proto",
		registry.Field("description", 1, registry.KindString),
		registry.MessageField("assay", 2, ontologyClass),
		registry.MessageField("value", 3, core("Value")).Oneof("measurement_value"),
		registry.MessageField("complex_value", 4, core("ComplexValue")).Oneof("measurement_value"),
		registry.MessageField("time_observed", 5, core("TimeElement")),
		registry.MessageField("procedure", 6, core("Procedure")),
	)
	ValueDesc = registry.NewMessageDescriptor(CorePackage, "Value", "phenopackets/schema/v2/core/measurement.proto",
		registry.MessageField("quantity", 1, core("Quantity")).Oneof("value"),
		registry.MessageField("ontology_class", 2, ontologyClass).Oneof("value"),
	)
	ComplexValueDesc = registry.NewMessageDescriptor(CorePackage, "ComplexValue", "phenopackets/schema/v2/core/measurement.proto",
		registry.MessageField("typed_quantities", 1, core("TypedQuantity")).Repeated(),
	)
	QuantityDesc = registry.NewMessageDescriptor(CorePackage, "Quantity", "phenopackets/schema/v2/core/measurement.proto",
		registry.MessageField("unit", 1, ontologyClass),
		registry.Field("value", 2, registry.KindDouble),
		registry.MessageField("reference_range", 3, core("ReferenceRange")),
	)
	TypedQuantityDesc = registry.NewMessageDescriptor(CorePackage, "TypedQuantity", "phenopackets/schema/v2/core/measurement.proto",
		registry.MessageField("type", 1, ontologyClass),
		registry.MessageField("quantity", 2, core("Quantity")),
	)
	ReferenceRangeDesc = registry.NewMessageDescriptor(CorePackage, "ReferenceRange", "phenopackets/schema/v2/core/measurement.proto",
		registry.MessageField("unit", 1, ontologyClass),
		registry.Field("low", 2, registry.KindDouble),
		registry.Field("high", 3, registry.KindDouble),
	)
)

// biosample.proto, disease.proto
var (
	BiosampleDesc = registry.NewMessageDescriptor(CorePackage, "Biosample", "phenopackets/schema/v2/core/biosample.proto",
		registry.Field("id", 1, registry.KindString),
		registry.Field("individual_id", 2, registry.KindString),
		registry.Field("derived_from_id", 3, registry.KindString),
		registry.Field("description", 4, registry.KindString),
		registry.MessageField("sampled_tissue", 5, ontologyClass),
		registry.MessageField("sample_type", 6, ontologyClass),
		registry.MessageField("phenotypic_features", 7, core("PhenotypicFeature")).Repeated(),
		registry.MessageField("measurements", 8, core("Measurement")).Repeated(),
		registry.MessageField("taxonomy", 9, ontologyClass),
		registry.MessageField("time_of_collection", 10, core("TimeElement")),
		registry.MessageField("histological_diagnosis", 11, ontologyClass),
		registry.MessageField("tumor_progression", 12, ontologyClass),
		registry.MessageField("tumor_grade", 13, ontologyClass),
		registry.MessageField("pathological_stage", 14, ontologyClass),
		registry.MessageField("pathological_tnm_finding", 15, ontologyClass).Repeated(),
		registry.MessageField("diagnostic_markers", 16, ontologyClass).Repeated(),
		registry.MessageField("procedure", 17, core("Procedure")),
		registry.MessageField("files", 18, core("File")).Repeated(),
		registry.MessageField("material_sample", 19, ontologyClass),
		registry.MessageField("sample_processing", 20, ontologyClass),
		registry.MessageField("sample_storage", 21, ontologyClass),
	)
	DiseaseDesc = registry.NewMessageDescriptor(CorePackage, "Disease", "phenopackets/schema/v2/core/disease.proto",
		registry.MessageField("term", 1, ontologyClass),
		registry.Field("excluded", 2, registry.KindBool),
		registry.MessageField("onset", 3, core("TimeElement")),
		registry.MessageField("resolution", 4, core("TimeElement")),
		registry.MessageField("disease_stage", 5, ontologyClass).Repeated(),
		registry.MessageField("clinical_tnm_finding", 6, ontologyClass).Repeated(),
		registry.MessageField("primary_site", 7, ontologyClass),
		registry.MessageField("laterality", 8, ontologyClass),
	)
)

// interpretation.proto
var (
	InterpretationDesc = registry.NewMessageDescriptor(CorePackage, "Interpretation", "phenopackets/schema/v2/core/interpretation.proto",
		registry.Field("id", 1, registry.KindString),
		registry.EnumField("progress_status", 2, core("Interpretation.ProgressStatus")),
		registry.MessageField("diagnosis", 3, core("Diagnosis")),
		registry.Field("summary", 4, registry.KindString),
	)
	DiagnosisDesc = registry.NewMessageDescriptor(CorePackage, "Diagnosis", "phenopackets/schema/v2/core/interpretation.proto",
		registry.MessageField("disease", 1, ontologyClass),
		registry.MessageField("genomic_interpretations", 2, core("GenomicInterpretation")).Repeated(),
	)
	GenomicInterpretationDesc = registry.NewMessageDescriptor(CorePackage, "GenomicInterpretation", "phenopackets/schema/v2/core/interpretation.proto",
		registry.Field("subject_or_biosample_id", 1, registry.KindString),
		registry.EnumField("interpretation_status", 2, core("GenomicInterpretation.InterpretationStatus")),
		registry.MessageField("gene", 3, registry.FullName(vrsatile.Package, "GeneDescriptor")).Oneof("call"),
		registry.MessageField("variant_interpretation", 4, core("VariantInterpretation")).Oneof("call"),
	)
	VariantInterpretationDesc = registry.NewMessageDescriptor(CorePackage, "VariantInterpretation", "phenopackets/schema/v2/core/interpretation.proto",
		registry.EnumField("acmg_pathogenicity_classification", 1, core("AcmgPathogenicityClassification")),
		registry.EnumField("therapeutic_actionability", 2, core("TherapeuticActionability")),
		registry.MessageField("variation_descriptor", 3, registry.FullName(vrsatile.Package, "VariationDescriptor")),
	)
)

// medical_action.proto
var (
	MedicalActionDesc = registry.NewMessageDescriptor(CorePackage, "MedicalAction", "phenopackets/schema/v2/core/medical_action.proto",
		registry.MessageField("procedure", 1, core("Procedure")).Oneof("action"),
		registry.MessageField("treatment", 2, core("Treatment")).Oneof("action"),
		registry.MessageField("radiation_therapy", 3, core("RadiationTherapy")).Oneof("action"),
		registry.MessageField("therapeutic_regimen", 4, core("TherapeuticRegimen")).Oneof("action"),
		registry.MessageField("treatment_target", 5, ontologyClass),
		registry.MessageField("treatment_intent", 6, ontologyClass),
		registry.MessageField("response_to_treatment", 7, ontologyClass),
		registry.MessageField("adverse_events", 8, ontologyClass).Repeated(),
		registry.MessageField("treatment_termination_reason", 9, ontologyClass),
	)
	TreatmentDesc = registry.NewMessageDescriptor(CorePackage, "Treatment", "phenopackets/schema/v2/core/medical_action.proto",
		registry.MessageField("agent", 1, ontologyClass),
		registry.MessageField("route_of_administration", 2, ontologyClass),
		registry.MessageField("dose_intervals", 3, core("DoseInterval")).Repeated(),
		registry.EnumField("drug_type", 4, core("DrugType")),
		registry.MessageField("cumulative_dose", 5, core("Quantity")),
	)
	DoseIntervalDesc = registry.NewMessageDescriptor(CorePackage, "DoseInterval", "phenopackets/schema/v2/core/medical_action.proto",
		registry.MessageField("quantity", 1, core("Quantity")),
		registry.MessageField("schedule_frequency", 2, ontologyClass),
		registry.MessageField("interval", 3, core("TimeInterval")),
	)
	RadiationTherapyDesc = registry.NewMessageDescriptor(CorePackage, "RadiationTherapy", "phenopackets/schema/v2/core/medical_action.proto",
		registry.MessageField("modality", 1, ontologyClass),
		registry.MessageField("body_site", 2, ontologyClass),
		registry.Field("dosage", 3, registry.KindInt32),
		registry.Field("fractions", 4, registry.KindInt32),
	)
	TherapeuticRegimenDesc = registry.NewMessageDescriptor(CorePackage, "TherapeuticRegimen", "phenopackets/schema/v2/core/medical_action.proto",
		registry.MessageField("external_reference", 1, core("ExternalReference")).Oneof("identifier"),
		registry.MessageField("ontology_class", 2, ontologyClass).Oneof("identifier"),
		registry.MessageField("start_time", 3, core("TimeElement")),
		registry.MessageField("end_time", 4, core("TimeElement")),
		registry.EnumField("regimen_status", 5, core("TherapeuticRegimen.RegimenStatus")),
	)
)

// meta_data.proto, pedigree.proto
var (
	MetaDataDesc = registry.NewMessageDescriptor(CorePackage, "MetaData", "phenopackets/schema/v2/core/meta_data.proto",
		registry.MessageField("created", 1, registry.TimestampName),
		registry.Field("created_by", 2, registry.KindString),
		registry.Field("submitted_by", 3, registry.KindString),
		registry.MessageField("resources", 4, core("Resource")).Repeated(),
		registry.MessageField("updates", 5, core("Update")).Repeated(),
		registry.Field("phenopacket_schema_version", 6, registry.KindString),
		registry.MessageField("external_references", 7, core("ExternalReference")).Repeated(),
	)
	ResourceDesc = registry.NewMessageDescriptor(CorePackage, "Resource", "phenopackets/schema/v2/core/meta_data.proto",
		registry.Field("id", 1, registry.KindString),
		registry.Field("name", 2, registry.KindString),
		registry.Field("url", 3, registry.KindString),
		registry.Field("version", 4, registry.KindString),
		registry.Field("namespace_prefix", 5, registry.KindString),
		registry.Field("iri_prefix", 6, registry.KindString),
	)
	UpdateDesc = registry.NewMessageDescriptor(CorePackage, "Update", "phenopackets/schema/v2/core/meta_data.proto",
		registry.MessageField("timestamp", 1, registry.TimestampName),
		registry.Field("updated_by", 2, registry.KindString),
		registry.Field("comment", 3, registry.KindString),
	)
	PedigreeDesc = registry.NewMessageDescriptor(CorePackage, "Pedigree", "phenopackets/schema/v2/core/pedigree.proto",
		registry.MessageField("persons", 1, core("Pedigree.Person")).Repeated(),
	)
	PersonDesc = registry.NewMessageDescriptor(CorePackage, "Pedigree.Person", "phenopackets/schema/v2/core/pedigree.proto",
		registry.Field("family_id", 1, registry.KindString),
		registry.Field("individual_id", 2, registry.KindString),
		registry.Field("paternal_id", 3, registry.KindString),
		registry.Field("maternal_id", 4, registry.KindString),
		registry.EnumField("sex", 5, core("Sex")),
		registry.EnumField("affected_status", 6, core("Pedigree.Person.AffectedStatus")),
	)
)

// phenopackets.proto
var (
	PhenopacketDesc = registry.NewMessageDescriptor(Package, "Phenopacket", "phenopackets/schema/v2/phenopackets.proto",
		registry.Field("id", 1, registry.KindString),
		registry.MessageField("subject", 2, core("Individual")),
		registry.MessageField("phenotypic_features", 3, core("PhenotypicFeature")).Repeated(),
		registry.MessageField("measurements", 4, core("Measurement")).Repeated(),
		registry.MessageField("biosamples", 5, core("Biosample")).Repeated(),
		registry.MessageField("interpretations", 6, core("Interpretation")).Repeated(),
		registry.MessageField("diseases", 7, core("Disease")).Repeated(),
		registry.MessageField("medical_actions", 8, core("MedicalAction")).Repeated(),
		registry.MessageField("files", 9, core("File")).Repeated(),
		registry.MessageField("meta_data", 10, core("MetaData")),
	)
	FamilyDesc = registry.NewMessageDescriptor(Package, "Family", "phenopackets/schema/v2/phenopackets.proto",
		registry.Field("id", 1, registry.KindString),
		registry.MessageField("proband", 2, top("Phenopacket")),
		registry.MessageField("relatives", 3, top("Phenopacket")).Repeated(),
		registry.MessageField("pedigree", 4, core("Pedigree")),
		registry.MessageField("files", 5, core("File")).Repeated(),
		registry.MessageField("meta_data", 6, core("MetaData")),
		registry.Field("consanguinous_parents", 7, registry.KindBool),
	)
	CohortDesc = registry.NewMessageDescriptor(Package, "Cohort", "phenopackets/schema/v2/phenopackets.proto",
		registry.Field("id", 1, registry.KindString),
		registry.Field("description", 2, registry.KindString),
		registry.MessageField("members", 3, top("Phenopacket")).Repeated(),
		registry.MessageField("files", 4, core("File")).Repeated(),
		registry.MessageField("meta_data", 5, core("MetaData")),
	)
)

// Enums lists the enum descriptors of the core namespace.
func Enums() []*registry.EnumDescriptor {
	return []*registry.EnumDescriptor{
		SexDesc,
		KaryotypicSexDesc,
		VitalStatusStatusDesc,
		ProgressStatusDesc,
		InterpretationStatusDesc,
		AcmgPathogenicityClassificationDesc,
		TherapeuticActionabilityDesc,
		DrugTypeDesc,
		RegimenStatusDesc,
		AffectedStatusDesc,
	}
}

// Messages lists every message descriptor of the v2 schema, the building
// blocks of package base included.
func Messages() []*registry.MessageDescriptor {
	return append(base.Messages(),
		IndividualDesc,
		VitalStatusDesc,
		PhenotypicFeatureDesc,
		MeasurementDesc,
		ValueDesc,
		ComplexValueDesc,
		QuantityDesc,
		TypedQuantityDesc,
		ReferenceRangeDesc,
		BiosampleDesc,
		DiseaseDesc,
		InterpretationDesc,
		DiagnosisDesc,
		GenomicInterpretationDesc,
		VariantInterpretationDesc,
		MedicalActionDesc,
		TreatmentDesc,
		DoseIntervalDesc,
		RadiationTherapyDesc,
		TherapeuticRegimenDesc,
		MetaDataDesc,
		ResourceDesc,
		UpdateDesc,
		PedigreeDesc,
		PersonDesc,
		PhenopacketDesc,
		FamilyDesc,
		CohortDesc,
	)
}

// Register adds the v2 schema to r. The VRSATILE types it references are
// registered separately, before r is frozen.
func Register(r *registry.Registry) error {
	for _, d := range Enums() {
		if err := r.RegisterEnum(d); err != nil {
			return err
		}
	}
	for _, d := range Messages() {
		if err := r.RegisterMessage(d); err != nil {
			return err
		}
	}
	return nil
}
