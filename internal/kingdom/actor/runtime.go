package actor

import (
	"context"
	"errors"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"

	"MedievalKingdoms/internal/kingdom/actors"
	"MedievalKingdoms/internal/kingdom/app/port"
	"MedievalKingdoms/internal/shared/transport"
)

const defaultAskTimeout = 3 * time.Second

type RuntimeError struct {
	Code    int
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RuntimeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Runtime 持有 actor system 与路由入口，对外提供同步 ask 语义。
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	manager *protoactor.PID
	timeout time.Duration
}

func NewRuntime(repo port.KingdomRepository, queue port.ConstructionRepository, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}

	system := protoactor.NewActorSystem()
	root := system.Root

	managerProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(repo, queue)
	})
	manager := root.Spawn(managerProps)

	return &Runtime{
		system:  system,
		root:    root,
		manager: manager,
		timeout: askTimeout,
	}
}

func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.manager != nil {
		r.root.Stop(r.manager)
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

// Ask 同步发送指令并等待 reply。超时取 ctx 剩余时间与默认超时的较小者。
func (r *Runtime) Ask(ctx context.Context, cmd actors.Command) (any, error) {
	if r == nil || r.root == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor runtime 未初始化"}
	}
	if cmd == nil {
		return nil, &RuntimeError{Code: transport.InvalidParam, Message: "kingdom command 不能为空"}
	}

	future := r.root.RequestFuture(r.manager, cmd, r.timeoutFromContext(ctx))
	res, err := future.Result()
	if err != nil {
		return nil, &RuntimeError{
			Code:    transport.SystemError,
			Message: "actor 请求失败",
			Cause:   err,
		}
	}
	return res, nil
}

// Tell 单向发送，不等待 reply（后台循环容忍丢失时使用）。
func (r *Runtime) Tell(cmd actors.Command) {
	if r == nil || r.root == nil || cmd == nil {
		return
	}
	r.root.Send(r.manager, cmd)
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}

func CodeFromError(err error) int {
	if err == nil {
		return transport.OK
	}
	var re *RuntimeError
	if errors.As(err, &re) && re != nil && re.Code != 0 {
		return re.Code
	}
	return transport.SystemError
}
