package v2_test

import (
	"errors"
	"testing"

	"github.com/danmuck/phenopackets/internal/testutil/testlog"
	"github.com/danmuck/phenopackets/pkg/catalog"
	"github.com/danmuck/phenopackets/pkg/dynamic"
	vrs "github.com/danmuck/phenopackets/pkg/ga4gh/vrs/v1"
	vrsatile "github.com/danmuck/phenopackets/pkg/ga4gh/vrsatile/v1"
	"github.com/danmuck/phenopackets/pkg/jsonpb"
	v2 "github.com/danmuck/phenopackets/pkg/phenopackets/schema/v2"
	"github.com/danmuck/phenopackets/pkg/wire"
	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func zaphod() *v2.Phenopacket {
	return &v2.Phenopacket{
		ID: "PPKT:1",
		Subject: &v2.Individual{
			ID:          "Zaphod",
			Sex:         v2.Male,
			DateOfBirth: &timestamppb.Timestamp{Seconds: -123456798},
		},
		PhenotypicFeatures: []*v2.PhenotypicFeature{
			{Type: v2.NewOntologyClass("HG2G:00001", "Hoopy")},
			{Type: v2.NewOntologyClass("HG2G:00002", "Frood")},
		},
	}
}

func variantCase() *v2.Phenopacket {
	onset, _ := v2.TimestampElement("2020-03-17T00:00:00Z")
	ga, _ := v2.NewGestationalAge(33, 2)
	return &v2.Phenopacket{
		ID: "arbitrary.id",
		Subject: &v2.Individual{
			ID:                  "proband A",
			AlternateIDs:        []string{"PMID:1234"},
			TimeAtLastEncounter: v2.AgeElement("P6M"),
			VitalStatus:         &v2.VitalStatus{Status: v2.Deceased, CauseOfDeath: v2.NewOntologyClass("MONDO:0100096", "COVID-19")},
			Sex:                 v2.Female,
			KaryotypicSex:       v2.XX,
			Taxonomy:            v2.NewOntologyClass("NCBITaxon:9606", "human"),
		},
		Measurements: []*v2.Measurement{
			{
				Assay: v2.NewOntologyClass("LOINC:26474-7", "Lymphocytes"),
				MeasurementValue: v2.MeasurementSimpleValue{Value: &v2.Value{Value: v2.ValueQuantity{Quantity: &v2.Quantity{
					Unit:           v2.NewOntologyClass("UCUM:10*9/L", "10^9/L"),
					Value:          1.4,
					ReferenceRange: &v2.ReferenceRange{Unit: v2.NewOntologyClass("UCUM:10*9/L", "10^9/L"), Low: 1, High: 4.5},
				}}}},
				TimeObserved: &v2.TimeElement{Element: v2.TimeElementGestationalAge{GestationalAge: ga}},
			},
			{
				Assay: v2.NewOntologyClass("CMO:0000003", "blood pressure"),
				MeasurementValue: v2.MeasurementComplexValue{ComplexValue: &v2.ComplexValue{TypedQuantities: []*v2.TypedQuantity{
					{Type: v2.NewOntologyClass("NCIT:C25298", "Systolic"), Quantity: &v2.Quantity{Value: 125}},
					{Type: v2.NewOntologyClass("NCIT:C25299", "Diastolic"), Quantity: &v2.Quantity{Value: 75}},
				}}},
			},
		},
		Interpretations: []*v2.Interpretation{{
			ID:             "interpretation.id",
			ProgressStatus: v2.Solved,
			Diagnosis: &v2.Diagnosis{
				Disease: v2.NewOntologyClass("OMIM:158810", "Bethlem myopathy 1"),
				GenomicInterpretations: []*v2.GenomicInterpretation{
					{
						SubjectOrBiosampleID: "proband A",
						InterpretationStatus: v2.Causative,
						Call: v2.GenomicCallVariant{VariantInterpretation: &v2.VariantInterpretation{
							AcmgPathogenicityClassification: v2.Pathogenic,
							VariationDescriptor: &vrsatile.VariationDescriptor{
								ID: "clinvar:31941",
								Variation: &vrs.Variation{Variation: vrs.VariationAllele{Allele: &vrs.Allele{
									Location: vrs.AlleleSequenceLocation{SequenceLocation: &vrs.SequenceLocation{
										SequenceID: "refseq:NC_000021.9",
										Interval: vrs.LocationSequenceInterval{SequenceInterval: &vrs.SequenceInterval{
											Start: &vrs.Number{Value: 45989625},
											End:   &vrs.Number{Value: 45989626},
										}},
									}},
									State: vrs.AlleleLiteralSequenceExpression{LiteralSequenceExpression: &vrs.LiteralSequenceExpression{Sequence: "T"}},
								}}},
								GeneContext:     &vrsatile.GeneDescriptor{ValueID: "HGNC:2188", Symbol: "COL6A1"},
								Expressions:     []*vrsatile.Expression{{Syntax: "hgvs", Value: "NM_001848.2:c.877G>A"}},
								VcfRecord:       &vrsatile.VcfRecord{GenomeAssembly: "GRCh38", Chrom: "21", Pos: 45989626, Ref: "G", Alt: "A"},
								MoleculeContext: vrsatile.Genomic,
								AllelicState:    v2.NewOntologyClass("GENO:0000135", "heterozygous"),
							},
						}},
					},
					{
						SubjectOrBiosampleID: "proband A",
						InterpretationStatus: v2.Candidate,
						Call:                 v2.GenomicCallGene{Gene: &vrsatile.GeneDescriptor{ValueID: "HGNC:2189", Symbol: "COL6A2"}},
					},
				},
			},
		}},
		Diseases: []*v2.Disease{{Term: v2.NewOntologyClass("MONDO:0005015", "diabetes mellitus"), Onset: onset}},
		MedicalActions: []*v2.MedicalAction{
			{
				Action: v2.ActionTreatment{Treatment: &v2.Treatment{
					Agent:    v2.NewOntologyClass("DrugCentral:1610", "prednisone"),
					DrugType: v2.Prescription,
					DoseIntervals: []*v2.DoseInterval{{
						Quantity: &v2.Quantity{Value: 5},
						Interval: &v2.TimeInterval{Start: &timestamppb.Timestamp{Seconds: 1600000000}, End: &timestamppb.Timestamp{Seconds: 1610000000}},
					}},
				}},
				AdverseEvents: []*v2.OntologyClass{v2.NewOntologyClass("HP:0001824", "Weight loss")},
			},
			{
				Action: v2.ActionTherapeuticRegimen{TherapeuticRegimen: &v2.TherapeuticRegimen{
					Identifier:    v2.RegimenOntologyClass{OntologyClass: v2.NewOntologyClass("NCIT:C10894", "Carboplatin/Paclitaxel")},
					RegimenStatus: v2.RegimenCompleted,
				}},
			},
			{Action: v2.ActionRadiationTherapy{RadiationTherapy: &v2.RadiationTherapy{Dosage: 60, Fractions: 30}}},
		},
		Files: []*v2.File{{URI: "file://data/genomes/P000001C", FileAttributes: map[string]string{"genomeAssembly": "GRCh38"}}},
		MetaData: &v2.MetaData{
			Created:                  &timestamppb.Timestamp{Seconds: 1575417600},
			CreatedBy:                "Peter R.",
			Resources:                []*v2.Resource{{ID: "hp", Name: "human phenotype ontology", NamespacePrefix: "HP"}},
			Updates:                  []*v2.Update{{Timestamp: &timestamppb.Timestamp{Seconds: 1600000000}, UpdatedBy: "Julius J."}},
			PhenopacketSchemaVersion: v2.SchemaVersion,
		},
	}
}

func TestZaphodJSONRoundTrip(t *testing.T) {
	testlog.Start(t)
	c := catalog.MustLoad()

	data, err := jsonpb.Marshal(c.Types, zaphod().ToMessage())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := gjson.GetBytes(data, "subject.dateOfBirth").String(); got != "1966-02-02T02:26:42Z" {
		t.Fatalf("unexpected dateOfBirth %q in %s", got, data)
	}
	if got := gjson.GetBytes(data, "subject.sex").String(); got != "MALE" {
		t.Fatalf("unexpected sex %q", got)
	}

	m, err := jsonpb.Unmarshal(c.Types, data, v2.PhenopacketDesc)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := dynamic.Load[v2.Phenopacket](m)
	if got.Subject.ID != "Zaphod" {
		t.Fatalf("unexpected subject id %q", got.Subject.ID)
	}
	if got.Subject.Sex.String() != "MALE" {
		t.Fatalf("unexpected sex %s", got.Subject.Sex)
	}
	want := [][2]string{{"HG2G:00001", "Hoopy"}, {"HG2G:00002", "Frood"}}
	if len(got.PhenotypicFeatures) != len(want) {
		t.Fatalf("expected %d features, got %d", len(want), len(got.PhenotypicFeatures))
	}
	for i, w := range want {
		term := got.PhenotypicFeatures[i].Type
		if term.ID != w[0] || term.Label != w[1] {
			t.Fatalf("feature %d: got %s/%s want %s/%s", i, term.ID, term.Label, w[0], w[1])
		}
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	testlog.Start(t)
	c := catalog.MustLoad()
	for name, want := range map[string]*v2.Phenopacket{"zaphod": zaphod(), "variant": variantCase()} {
		b, err := wire.Marshal(want.ToMessage())
		if err != nil {
			t.Fatalf("%s: marshal: %v", name, err)
		}
		m, err := wire.Unmarshal(c.Types, b, v2.PhenopacketDesc)
		if err != nil {
			t.Fatalf("%s: unmarshal: %v", name, err)
		}
		if diff := cmp.Diff(want, dynamic.Load[v2.Phenopacket](m), protocmp.Transform()); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	testlog.Start(t)
	c := catalog.MustLoad()
	want := variantCase()
	data, err := jsonpb.Marshal(c.Types, want.ToMessage())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := gjson.GetBytes(data, "interpretations.0.diagnosis.genomicInterpretations.0.variantInterpretation.variationDescriptor.vcfRecord.pos").String(); got != "45989626" {
		t.Fatalf("uint64 pos should be a JSON string, got %q", got)
	}
	if got := gjson.GetBytes(data, "interpretations.0.progressStatus").String(); got != "SOLVED" {
		t.Fatalf("unexpected progressStatus %q", got)
	}
	m, err := jsonpb.Unmarshal(c.Types, data, v2.PhenopacketDesc)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(want, dynamic.Load[v2.Phenopacket](m), protocmp.Transform()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestGenomicCallAccessors(t *testing.T) {
	testlog.Start(t)
	gis := variantCase().Interpretations[0].Diagnosis.GenomicInterpretations
	vi := gis[0].Variant()
	if vi == nil || vi.AcmgPathogenicityClassification != v2.Pathogenic {
		t.Fatalf("expected pathogenic variant, got %+v", vi)
	}
	if gis[1].Variant() != nil {
		t.Fatal("gene call has no variant interpretation")
	}
	var nilGI *v2.GenomicInterpretation
	if nilGI.Variant() != nil || nilGI.ToMessage() != nil {
		t.Fatal("nil interpretation must stay nil")
	}
}

func TestEnumNumbersAndNames(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		got  int32
		want int32
		name string
		str  string
	}{
		{int32(v2.Male), 2, "MALE", v2.Male.String()},
		{int32(v2.Solved), 3, "SOLVED", v2.Solved.String()},
		{int32(v2.Pathogenic), 5, "PATHOGENIC", v2.Pathogenic.String()},
		{int32(v2.Causative), 4, "CAUSATIVE", v2.Causative.String()},
		{int32(v2.RegimenCompleted), 2, "COMPLETED", v2.RegimenCompleted.String()},
		{int32(v2.Affected), 2, "AFFECTED", v2.Affected.String()},
		{int32(v2.OtherKaryotype), 10, "OTHER_KARYOTYPE", v2.OtherKaryotype.String()},
	}
	for _, tc := range cases {
		if tc.got != tc.want || tc.str != tc.name {
			t.Fatalf("enum %s: got %d/%s want %d/%s", tc.name, tc.got, tc.str, tc.want, tc.name)
		}
	}
}

func TestFamilyAndCohortRoundTrip(t *testing.T) {
	testlog.Start(t)
	c := catalog.MustLoad()
	family := &v2.Family{
		ID:        "family",
		Proband:   zaphod(),
		Relatives: []*v2.Phenopacket{{ID: "relative", Subject: &v2.Individual{ID: "Trillian", Sex: v2.Female}}},
		Pedigree: &v2.Pedigree{Persons: []*v2.Person{
			{FamilyID: "family", IndividualID: "Zaphod", MaternalID: "Trillian", Sex: v2.Male, AffectedStatus: v2.Affected},
			{FamilyID: "family", IndividualID: "Trillian", Sex: v2.Female, AffectedStatus: v2.Unaffected},
		}},
		ConsanguinousParents: true,
	}
	cohort := &v2.Cohort{ID: "cohort", Description: "two", Members: []*v2.Phenopacket{zaphod(), variantCase()}}

	for _, tc := range []struct {
		name string
		msg  dynamic.Model
		load func(*dynamic.Message) any
	}{
		{"family", family, func(m *dynamic.Message) any { return dynamic.Load[v2.Family](m) }},
		{"cohort", cohort, func(m *dynamic.Message) any { return dynamic.Load[v2.Cohort](m) }},
	} {
		data, err := jsonpb.Marshal(c.Types, tc.msg.ToMessage())
		if err != nil {
			t.Fatalf("%s: marshal: %v", tc.name, err)
		}
		m, err := jsonpb.Unmarshal(c.Types, data, tc.msg.Descriptor())
		if err != nil {
			t.Fatalf("%s: unmarshal: %v", tc.name, err)
		}
		if diff := cmp.Diff(tc.msg, tc.load(m), protocmp.Transform()); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestCheckWellFormed(t *testing.T) {
	testlog.Start(t)
	if err := v2.CheckWellFormed(variantCase()); err != nil {
		t.Fatalf("variant case is well formed: %v", err)
	}
	if err := v2.CheckWellFormed(zaphod()); !errors.Is(err, v2.ErrMissingMetaData) {
		t.Fatalf("expected ErrMissingMetaData, got %v", err)
	}
	if err := v2.CheckWellFormed(&v2.Phenopacket{MetaData: &v2.MetaData{}}); !errors.Is(err, v2.ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
	if err := v2.CheckWellFormed(nil); !errors.Is(err, v2.ErrMissingID) {
		t.Fatalf("expected ErrMissingID for nil, got %v", err)
	}
}
