package v2

import (
	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/registry"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// MetaData records provenance: who created the packet, when, and which
// vocabularies its terms come from.
type MetaData struct {
	Created                  *timestamppb.Timestamp
	CreatedBy                string
	SubmittedBy              string
	Resources                []*Resource
	Updates                  []*Update
	PhenopacketSchemaVersion string
	ExternalReferences       []*ExternalReference
}

func (*MetaData) Descriptor() *registry.MessageDescriptor { return MetaDataDesc }

func (x *MetaData) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(MetaDataDesc).
		Timestamp("created", x.Created).
		String("created_by", x.CreatedBy).
		String("submitted_by", x.SubmittedBy).
		Messages("resources", dynamic.ToMessages(x.Resources)).
		Messages("updates", dynamic.ToMessages(x.Updates)).
		String("phenopacket_schema_version", x.PhenopacketSchemaVersion).
		Messages("external_references", dynamic.ToMessages(x.ExternalReferences)).
		Done()
}

func (x *MetaData) FromMessage(m *dynamic.Message) {
	x.Created = m.GetTimestamp("created")
	x.CreatedBy = m.GetString("created_by")
	x.SubmittedBy = m.GetString("submitted_by")
	x.Resources = dynamic.LoadAll[Resource](m.GetMessages("resources"))
	x.Updates = dynamic.LoadAll[Update](m.GetMessages("updates"))
	x.PhenopacketSchemaVersion = m.GetString("phenopacket_schema_version")
	x.ExternalReferences = dynamic.LoadAll[ExternalReference](m.GetMessages("external_references"))
}

// Resource describes an ontology or other vocabulary referenced by CURIEs.
type Resource struct {
	ID              string
	Name            string
	URL             string
	Version         string
	NamespacePrefix string
	IRIPrefix       string
}

func (*Resource) Descriptor() *registry.MessageDescriptor { return ResourceDesc }

func (x *Resource) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(ResourceDesc).
		String("id", x.ID).
		String("name", x.Name).
		String("url", x.URL).
		String("version", x.Version).
		String("namespace_prefix", x.NamespacePrefix).
		String("iri_prefix", x.IRIPrefix).
		Done()
}

func (x *Resource) FromMessage(m *dynamic.Message) {
	x.ID = m.GetString("id")
	x.Name = m.GetString("name")
	x.URL = m.GetString("url")
	x.Version = m.GetString("version")
	x.NamespacePrefix = m.GetString("namespace_prefix")
	x.IRIPrefix = m.GetString("iri_prefix")
}

type Update struct {
	Timestamp *timestamppb.Timestamp
	UpdatedBy string
	Comment   string
}

func (*Update) Descriptor() *registry.MessageDescriptor { return UpdateDesc }

func (x *Update) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(UpdateDesc).
		Timestamp("timestamp", x.Timestamp).
		String("updated_by", x.UpdatedBy).
		String("comment", x.Comment).
		Done()
}

func (x *Update) FromMessage(m *dynamic.Message) {
	x.Timestamp = m.GetTimestamp("timestamp")
	x.UpdatedBy = m.GetString("updated_by")
	x.Comment = m.GetString("comment")
}
