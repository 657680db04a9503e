package registry

const (
	WellKnownPackage = "google.protobuf"
	TimestampName    = "google.protobuf.Timestamp"
	DurationName     = "google.protobuf.Duration"
)

var (
	timestampDescriptor = secondsNanos("Timestamp", "google/protobuf/timestamp.proto", WellKnownTimestamp)
	durationDescriptor  = secondsNanos("Duration", "google/protobuf/duration.proto", WellKnownDuration)
)

func secondsNanos(name, source string, wk WellKnown) *MessageDescriptor {
	d := NewMessageDescriptor(WellKnownPackage, name, source,
		Field("seconds", 1, KindInt64),
		Field("nanos", 2, KindInt32),
	)
	d.wellKnown = wk
	return d
}

// TimestampDescriptor describes google.protobuf.Timestamp.
func TimestampDescriptor() *MessageDescriptor { return timestampDescriptor }

// DurationDescriptor describes google.protobuf.Duration.
func DurationDescriptor() *MessageDescriptor { return durationDescriptor }

func RegisterWellKnownTypes(r *Registry) error {
	for _, d := range []*MessageDescriptor{timestampDescriptor, durationDescriptor} {
		if err := r.RegisterMessage(d); err != nil {
			return err
		}
	}
	return nil
}
