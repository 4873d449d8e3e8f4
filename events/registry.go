package events

import (
	"reflect"
)

var (
	nameToType    = make(map[string]SignalType)
	typeToName    = make(map[SignalType]string)
	typeToPayload = make(map[SignalType]reflect.Type)
	registryInit  = false
)

// RegisterType maps a string name to a SignalType and its payload struct type
// payloadInstance should be a pointer to the payload struct; nil if the
// signal has no payload
func RegisterType(name string, st SignalType, payloadInstance any) {
	nameToType[name] = st
	typeToName[st] = name
	if payloadInstance != nil {
		t := reflect.TypeOf(payloadInstance)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		typeToPayload[st] = t
	}
}

// GetSignalType returns the SignalType for a given name
func GetSignalType(name string) (SignalType, bool) {
	st, ok := nameToType[name]
	return st, ok
}

// GetSignalName returns the string name for a SignalType
func GetSignalName(st SignalType) string {
	return typeToName[st]
}

// NewPayloadStruct returns a new pointer to a zero-value payload struct for
// the signal type, or nil if no payload is registered
func NewPayloadStruct(st SignalType) any {
	t, ok := typeToPayload[st]
	if !ok {
		return nil
	}
	return reflect.New(t).Interface()
}

// InitRegistry populates the registry with all signal types
// Must be called once at startup
func InitRegistry() {
	if registryInit {
		return
	}
	registryInit = true

	RegisterType("EditChanged", SignalEditChanged, &EditChangedPayload{})
	RegisterType("Saved", SignalSaved, nil)
	RegisterType("EditorClosed", SignalEditorClosed, nil)
	RegisterType("ActiveEditorChanged", SignalActiveEditorChanged, nil)
	RegisterType("DiagnosticsChanged", SignalDiagnosticsChanged, &DiagnosticsChangedPayload{})
	RegisterType("TaskStarted", SignalTaskStarted, nil)
	RegisterType("TaskEnded", SignalTaskEnded, &TaskEndedPayload{})
	RegisterType("DebugStarted", SignalDebugStarted, nil)
	RegisterType("DebugEnded", SignalDebugEnded, nil)
	RegisterType("Clicked", SignalClicked, nil)
}
