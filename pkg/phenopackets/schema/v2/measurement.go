package v2

import (
	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/registry"
)

// PhenotypicFeature is an observed (or explicitly excluded) phenotype.
type PhenotypicFeature struct {
	Description string
	Type        *OntologyClass
	Excluded    bool
	Severity    *OntologyClass
	Modifiers   []*OntologyClass
	Onset       *TimeElement
	Resolution  *TimeElement
	Evidence    []*Evidence
}

func (*PhenotypicFeature) Descriptor() *registry.MessageDescriptor { return PhenotypicFeatureDesc }

func (x *PhenotypicFeature) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(PhenotypicFeatureDesc).
		String("description", x.Description).
		Message("type", x.Type.ToMessage()).
		Bool("excluded", x.Excluded).
		Message("severity", x.Severity.ToMessage()).
		Messages("modifiers", dynamic.ToMessages(x.Modifiers)).
		Message("onset", x.Onset.ToMessage()).
		Message("resolution", x.Resolution.ToMessage()).
		Messages("evidence", dynamic.ToMessages(x.Evidence)).
		Done()
}

func (x *PhenotypicFeature) FromMessage(m *dynamic.Message) {
	x.Description = m.GetString("description")
	x.Type = dynamic.Load[OntologyClass](m.GetMessage("type"))
	x.Excluded = m.GetBool("excluded")
	x.Severity = dynamic.Load[OntologyClass](m.GetMessage("severity"))
	x.Modifiers = dynamic.LoadAll[OntologyClass](m.GetMessages("modifiers"))
	x.Onset = dynamic.Load[TimeElement](m.GetMessage("onset"))
	x.Resolution = dynamic.Load[TimeElement](m.GetMessage("resolution"))
	x.Evidence = dynamic.LoadAll[Evidence](m.GetMessages("evidence"))
}

// Measurement is an assay result: a single Value or a ComplexValue.
type Measurement struct {
	Description      string
	Assay            *OntologyClass
	MeasurementValue MeasurementValue
	TimeObserved     *TimeElement
	Procedure        *Procedure
}

type MeasurementValue interface{ isMeasurementValue() }

type MeasurementSimpleValue struct{ Value *Value }
type MeasurementComplexValue struct{ ComplexValue *ComplexValue }

func (MeasurementSimpleValue) isMeasurementValue()  {}
func (MeasurementComplexValue) isMeasurementValue() {}

func (*Measurement) Descriptor() *registry.MessageDescriptor { return MeasurementDesc }

func (x *Measurement) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	b := dynamic.Build(MeasurementDesc).
		String("description", x.Description).
		Message("assay", x.Assay.ToMessage()).
		Message("time_observed", x.TimeObserved.ToMessage()).
		Message("procedure", x.Procedure.ToMessage())
	switch v := x.MeasurementValue.(type) {
	case MeasurementSimpleValue:
		b.Message("value", v.Value.ToMessage())
	case MeasurementComplexValue:
		b.Message("complex_value", v.ComplexValue.ToMessage())
	}
	return b.Done()
}

func (x *Measurement) FromMessage(m *dynamic.Message) {
	x.Description = m.GetString("description")
	x.Assay = dynamic.Load[OntologyClass](m.GetMessage("assay"))
	switch m.Which("measurement_value") {
	case "value":
		x.MeasurementValue = MeasurementSimpleValue{Value: dynamic.Load[Value](m.GetMessage("value"))}
	case "complex_value":
		x.MeasurementValue = MeasurementComplexValue{ComplexValue: dynamic.Load[ComplexValue](m.GetMessage("complex_value"))}
	}
	x.TimeObserved = dynamic.Load[TimeElement](m.GetMessage("time_observed"))
	x.Procedure = dynamic.Load[Procedure](m.GetMessage("procedure"))
}

// Value is a quantity or an ontology term.
type Value struct {
	Value ValueKind
}

type ValueKind interface{ isValueKind() }

type ValueQuantity struct{ Quantity *Quantity }
type ValueOntologyClass struct{ OntologyClass *OntologyClass }

func (ValueQuantity) isValueKind()      {}
func (ValueOntologyClass) isValueKind() {}

func (*Value) Descriptor() *registry.MessageDescriptor { return ValueDesc }

func (x *Value) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	b := dynamic.Build(ValueDesc)
	switch v := x.Value.(type) {
	case ValueQuantity:
		b.Message("quantity", v.Quantity.ToMessage())
	case ValueOntologyClass:
		b.Message("ontology_class", v.OntologyClass.ToMessage())
	}
	return b.Done()
}

func (x *Value) FromMessage(m *dynamic.Message) {
	switch m.Which("value") {
	case "quantity":
		x.Value = ValueQuantity{Quantity: dynamic.Load[Quantity](m.GetMessage("quantity"))}
	case "ontology_class":
		x.Value = ValueOntologyClass{OntologyClass: dynamic.Load[OntologyClass](m.GetMessage("ontology_class"))}
	}
}

type ComplexValue struct {
	TypedQuantities []*TypedQuantity
}

func (*ComplexValue) Descriptor() *registry.MessageDescriptor { return ComplexValueDesc }

func (x *ComplexValue) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(ComplexValueDesc).
		Messages("typed_quantities", dynamic.ToMessages(x.TypedQuantities)).
		Done()
}

func (x *ComplexValue) FromMessage(m *dynamic.Message) {
	x.TypedQuantities = dynamic.LoadAll[TypedQuantity](m.GetMessages("typed_quantities"))
}

type Quantity struct {
	Unit           *OntologyClass
	Value          float64
	ReferenceRange *ReferenceRange
}

func (*Quantity) Descriptor() *registry.MessageDescriptor { return QuantityDesc }

func (x *Quantity) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(QuantityDesc).
		Message("unit", x.Unit.ToMessage()).
		Float("value", x.Value).
		Message("reference_range", x.ReferenceRange.ToMessage()).
		Done()
}

func (x *Quantity) FromMessage(m *dynamic.Message) {
	x.Unit = dynamic.Load[OntologyClass](m.GetMessage("unit"))
	x.Value = m.GetFloat("value")
	x.ReferenceRange = dynamic.Load[ReferenceRange](m.GetMessage("reference_range"))
}

type TypedQuantity struct {
	Type     *OntologyClass
	Quantity *Quantity
}

func (*TypedQuantity) Descriptor() *registry.MessageDescriptor { return TypedQuantityDesc }

func (x *TypedQuantity) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(TypedQuantityDesc).
		Message("type", x.Type.ToMessage()).
		Message("quantity", x.Quantity.ToMessage()).
		Done()
}

func (x *TypedQuantity) FromMessage(m *dynamic.Message) {
	x.Type = dynamic.Load[OntologyClass](m.GetMessage("type"))
	x.Quantity = dynamic.Load[Quantity](m.GetMessage("quantity"))
}

type ReferenceRange struct {
	Unit *OntologyClass
	Low  float64
	High float64
}

func (*ReferenceRange) Descriptor() *registry.MessageDescriptor { return ReferenceRangeDesc }

func (x *ReferenceRange) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(ReferenceRangeDesc).
		Message("unit", x.Unit.ToMessage()).
		Float("low", x.Low).
		Float("high", x.High).
		Done()
}

func (x *ReferenceRange) FromMessage(m *dynamic.Message) {
	x.Unit = dynamic.Load[OntologyClass](m.GetMessage("unit"))
	x.Low = m.GetFloat("low")
	x.High = m.GetFloat("high")
}
