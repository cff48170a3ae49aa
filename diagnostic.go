package vulkanengine

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/muesli/termenv"
	vk "github.com/vulkan-go/vulkan"
)

// Severity of a runtime diagnostic message.
type Severity int

const (
	SeverityVerbose Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityVerbose:
		return "VERBOSE"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return fmt.Sprintf("SEVERITY(%d)", int(s))
	}
}

// Category of a runtime diagnostic message.
type Category int

const (
	CategoryGeneral Category = iota
	CategoryValidation
	CategoryPerformance
)

func (c Category) String() string {
	switch c {
	case CategoryGeneral:
		return "GENERAL"
	case CategoryValidation:
		return "VALIDATION"
	case CategoryPerformance:
		return "PERFORMANCE"
	default:
		return fmt.Sprintf("CATEGORY(%d)", int(c))
	}
}

// DiagnosticSink receives tagged diagnostic lines. Terminal outputs get the
// severity tag coloured.
type DiagnosticSink struct {
	out *termenv.Output
}

// NewDiagnosticSink creates a sink writing to w. A nil w writes to stderr.
func NewDiagnosticSink(w io.Writer, opts ...termenv.OutputOption) *DiagnosticSink {
	if w == nil {
		w = os.Stderr
	}
	return &DiagnosticSink{out: termenv.NewOutput(w, opts...)}
}

// FormatDiagnostic renders a message as "[DEBUG] [<SEVERITY>] [<CATEGORY>]: <message>".
func FormatDiagnostic(severity Severity, category Category, message string) string {
	return formatDiagnostic(severityTag(severity), category, message)
}

func severityTag(s Severity) string {
	return "[" + s.String() + "]"
}

func formatDiagnostic(severityTag string, category Category, message string) string {
	return fmt.Sprintf("[DEBUG] %s [%s]: %s", severityTag, category, message)
}

// Write emits one diagnostic line.
func (s *DiagnosticSink) Write(severity Severity, category Category, message string) {
	tag := severityTag(severity)
	if s.out.Profile != termenv.Ascii {
		tag = s.out.String(tag).Foreground(s.out.Color(severityColor(severity))).String()
	}
	fmt.Fprintln(s.out, formatDiagnostic(tag, category, message))
}

// Error writes a failure description, used at the process boundary.
func (s *DiagnosticSink) Error(err error) {
	fmt.Fprintf(s.out, "%v\n", err)
	if hints := errors.FlattenHints(err); hints != "" {
		fmt.Fprintf(s.out, "hint: %s\n", hints)
	}
}

func severityColor(s Severity) string {
	switch s {
	case SeverityError:
		return "1"
	case SeverityWarning:
		return "3"
	case SeverityInfo:
		return "6"
	default:
		return "8"
	}
}

// classifyReport maps debug report flags and the reporting layer onto a
// severity and category.
func classifyReport(flags vk.DebugReportFlags, layerPrefix string) (Severity, Category) {
	has := func(bit vk.DebugReportFlagBits) bool {
		return flags&vk.DebugReportFlags(bit) != 0
	}

	category := CategoryGeneral
	if strings.Contains(strings.ToLower(layerPrefix), "validation") {
		category = CategoryValidation
	}

	switch {
	case has(vk.DebugReportErrorBit):
		return SeverityError, category
	case has(vk.DebugReportPerformanceWarningBit):
		return SeverityWarning, CategoryPerformance
	case has(vk.DebugReportWarningBit):
		return SeverityWarning, category
	case has(vk.DebugReportInformationBit):
		return SeverityInfo, category
	default:
		return SeverityVerbose, category
	}
}

// debugReportFlags subscribes to every severity.
const debugReportFlags = vk.DebugReportInformationBit | vk.DebugReportWarningBit |
	vk.DebugReportPerformanceWarningBit | vk.DebugReportErrorBit | vk.DebugReportDebugBit

// DebugReportCreateInfo builds the create info for a channel writing to sink.
// It is also chained into instance creation so that vkCreateInstance itself
// is observed.
func DebugReportCreateInfo(sink *DiagnosticSink) *vk.DebugReportCallbackCreateInfo {
	return &vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(debugReportFlags),
		PfnCallback: func(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
			object uint64, location uint, messageCode int32, pLayerPrefix string,
			pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

			severity, category := classifyReport(flags, pLayerPrefix)
			sink.Write(severity, category, pMessage)
			// observational only, never abort the call that triggered it
			return vk.Bool32(vk.False)
		},
	}
}

// DiagnosticChannel is a live debug report callback bound to an Instance.
// It must be destroyed before the instance.
type DiagnosticChannel struct {
	Instance        *Instance
	VKDebugCallback vk.DebugReportCallback
}

// CreateDiagnosticChannel registers a callback forwarding runtime messages
// to sink. If the instance could not resolve the debug report entry points
// the channel is not created and ErrExtensionNotPresent is returned.
func (i *Instance) CreateDiagnosticChannel(sink *DiagnosticSink) (*DiagnosticChannel, error) {
	info := DebugReportCreateInfo(sink)
	var callback vk.DebugReportCallback
	if err := debugReportError(vk.CreateDebugReportCallback(i.VKInstance, info, nil, &callback)); err != nil {
		return nil, err
	}
	return &DiagnosticChannel{Instance: i, VKDebugCallback: callback}, nil
}

// debugReportError maps the result of creating a debug report callback. The
// loader bridge answers NotReady when the entry point resolved to nothing.
func debugReportError(res vk.Result) error {
	if res == vk.NotReady {
		return errors.Mark(errors.Newf("%s entry points not found", DebugReportExtensionName), ErrExtensionNotPresent)
	}
	return vkError(res, "create debug report callback")
}

// Destroy unregisters the callback.
func (c *DiagnosticChannel) Destroy() {
	if c == nil || c.VKDebugCallback == vk.DebugReportCallback(vk.NullHandle) {
		return
	}
	vk.DestroyDebugReportCallback(c.Instance.VKInstance, c.VKDebugCallback, nil)
	c.VKDebugCallback = vk.DebugReportCallback(vk.NullHandle)
}
