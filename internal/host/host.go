package host

// Capability идентифицирует интерфейс, который можно запросить у клиента хоста.
type Capability string

const (
	CapabilityOutput  Capability = "output"
	CapabilityControl Capability = "control"
)

// Маска вывода и константы точек останова совпадают со значениями движка отладки.
const (
	OutputAllClients uint32 = 0x1

	AnyID uint32 = 0xFFFFFFFF

	BreakpointEnabled uint32 = 0x4
)

// BreakpointKind задает тип создаваемой точки останова.
type BreakpointKind uint32

const (
	BreakpointCode BreakpointKind = 0
	BreakpointData BreakpointKind = 1
)

func (k BreakpointKind) String() string {
	switch k {
	case BreakpointCode:
		return "code"
	case BreakpointData:
		return "data"
	default:
		return "unknown"
	}
}

// Client описывает непрозрачный дескриптор клиента, который хост передает в каждый вызов.
// Хендл заимствован: его нельзя сохранять после возврата из команды.
type Client interface {
	Query(c Capability) (any, error)
}

// Output печатает текст во все подключенные консоли хоста.
type Output interface {
	Output(mask uint32, text string) error
}

// Control дает доступ к управлению движком: вывод и создание точек останова.
type Control interface {
	Output
	AddBreakpoint(kind BreakpointKind, id uint32) (Breakpoint, error)
}

// Breakpoint принадлежит хосту с момента создания.
type Breakpoint interface {
	ID() (uint32, error)
	SetOffsetExpression(expr string) error
	SetCommand(cmd string) error
	AddFlags(flags uint32) error
}
