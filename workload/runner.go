package workload

import (
	"cmp"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Tsukikage7/rbtree-kit/collections/treemap"
	"github.com/Tsukikage7/rbtree-kit/logger"
	"github.com/Tsukikage7/rbtree-kit/metrics"
	"github.com/Tsukikage7/rbtree-kit/tracing"
)

// 运行错误.
var (
	ErrInvariant  = errors.New("workload: 红黑树性质被破坏")
	ErrOrder      = errors.New("workload: 遍历顺序错误")
	ErrLookup     = errors.New("workload: 查找结果错误")
	ErrUnbalanced = errors.New("workload: 树高超出上界")
)

// ctxCheckInterval 每执行多少步检查一次 context.
const ctxCheckInterval = 1024

// 阶段 span 名称.
const (
	PhaseInsert = "workload.insert"
	PhaseQuery  = "workload.query"
	PhaseRemove = "workload.remove"
)

// Result 负载运行结果.
type Result struct {
	Name    string
	KeyKind string
	Order   string
	Keys    int

	Inserted int
	Replaced int
	Hits     int
	Misses   int
	Removed  int
	Verified int

	FinalLen    int
	Height      int
	HeightBound float64
	Elapsed     time.Duration
}

// Runner 负载执行器.
type Runner struct {
	cfg       *Config
	log       logger.Logger
	collector metrics.Collector
	tracer    trace.Tracer
}

// Option Runner 选项函数.
type Option func(*Runner)

// WithLogger 设置 logger.
func WithLogger(log logger.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// WithCollector 设置指标收集器.
func WithCollector(c metrics.Collector) Option {
	return func(r *Runner) {
		r.collector = c
	}
}

// WithTracerProvider 设置 TracerProvider，未设置时使用全局 provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Runner) {
		r.tracer = tracing.Tracer(tp)
	}
}

// NewRunner 创建负载执行器.
func NewRunner(cfg *Config, opts ...Option) (*Runner, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	r := &Runner{cfg: cfg, log: logger.NewNop(), tracer: tracing.Tracer(nil)}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logger.String("workload", cfg.Name))
	return r, nil
}

// Run 执行负载，ctx 取消时提前返回.
// 每次运行对应一个根 span，插入、查询、删除三个阶段各对应一个子 span.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	ctx, span := tracing.StartSpan(ctx, r.tracer, "workload "+r.cfg.Name,
		attribute.String("workload.name", r.cfg.Name),
		attribute.String("workload.key_kind", r.cfg.KeyKind),
		attribute.String("workload.order", r.cfg.Order),
		attribute.Int("workload.keys", r.cfg.Keys),
	)
	defer span.End()

	res, err := r.dispatch(ctx)
	if err != nil {
		tracing.SetSpanError(ctx, err)
		return nil, err
	}
	tracing.SetSpanAttributes(ctx,
		attribute.Int("tree.len", res.FinalLen),
		attribute.Int("tree.height", res.Height),
		attribute.Float64("tree.height_bound", res.HeightBound),
	)
	return res, nil
}

func (r *Runner) dispatch(ctx context.Context) (*Result, error) {
	switch strings.ToLower(r.cfg.KeyKind) {
	case KeyUUID:
		keys, err := uuidKeys(r.cfg.Keys, r.cfg.Order, r.cfg.Seed)
		if err != nil {
			return nil, err
		}
		return run(ctx, r, keys, strings.Compare, func(i int) string {
			return fmt.Sprintf("missing-%08d", i)
		})
	default:
		n := r.cfg.Keys
		keys := intKeys(n, r.cfg.Order, r.cfg.Seed)
		return run(ctx, r, keys, cmp.Compare[int], func(i int) int {
			return n + i
		})
	}
}

// phase 在子 span 中执行 fn，结束时记录树的大小与高度.
func phase[K any](ctx context.Context, r *Runner, m *treemap.Map[K, int], name string, fn func() error) error {
	ctx, span := tracing.StartSpan(ctx, r.tracer, name)
	defer span.End()

	err := fn()
	tracing.SetSpanAttributes(ctx,
		attribute.Int("tree.len", m.Len()),
		attribute.Int("tree.height", m.Height()),
	)
	if err != nil {
		tracing.SetSpanError(ctx, err)
	}
	return err
}

// run 按插入、查询、删除三个阶段执行.
// missing 生成一定不在键集合中的键.
func run[K any](ctx context.Context, r *Runner, keys []K, compare treemap.Comparator[K], missing func(int) K) (*Result, error) {
	cfg := r.cfg
	start := time.Now()
	res := &Result{
		Name:    cfg.Name,
		KeyKind: cfg.KeyKind,
		Order:   cfg.Order,
		Keys:    len(keys),
	}

	m := treemap.New[K, int](compare,
		treemap.WithName(cfg.Name),
		treemap.WithLogger(r.log),
		treemap.WithCollector(r.collector),
	)

	step := 0
	check := func() error {
		step++
		if step%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if cfg.VerifyEvery > 0 && step%cfg.VerifyEvery == 0 {
			return verify(m, res)
		}
		return nil
	}

	err := phase(ctx, r, m, PhaseInsert, func() error {
		for i, k := range keys {
			if m.InsertKeyValue(k, i) {
				res.Replaced++
			} else {
				res.Inserted++
			}
			if err := check(); err != nil {
				return err
			}
		}
		if err := verify(m, res); err != nil {
			return err
		}
		return checkOrder(m, compare)
	})
	if err != nil {
		return nil, err
	}
	r.log.Debugf("insert phase done: len=%d height=%d", m.Len(), m.Height())

	err = phase(ctx, r, m, PhaseQuery, func() error {
		for _, k := range keys {
			if !m.Contains(k) {
				return fmt.Errorf("%w: inserted key %v not found", ErrLookup, k)
			}
			res.Hits++
			if err := check(); err != nil {
				return err
			}
		}
		for i := range int(cfg.MissRatio * float64(len(keys))) {
			k := missing(i)
			if m.Contains(k) {
				return fmt.Errorf("%w: absent key %v found", ErrLookup, k)
			}
			res.Misses++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = phase(ctx, r, m, PhaseRemove, func() error {
		rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
		order := rng.Perm(len(keys))
		removeN := int(cfg.RemoveRatio * float64(len(keys)))
		for _, idx := range order[:removeN] {
			m.RemoveElementWithKey(keys[idx])
			res.Removed++
			if err := check(); err != nil {
				return err
			}
		}
		if err := verify(m, res); err != nil {
			return err
		}
		for _, idx := range order[:removeN] {
			if m.Contains(keys[idx]) {
				return fmt.Errorf("%w: removed key %v still present", ErrLookup, keys[idx])
			}
		}
		return checkOrder(m, compare)
	})
	if err != nil {
		return nil, err
	}

	res.FinalLen = m.Len()
	res.Height = m.Height()
	res.HeightBound = 2 * math.Log2(float64(res.FinalLen+1))
	res.Elapsed = time.Since(start)

	if r.collector != nil {
		r.collector.SetHeight(cfg.Name, res.Height)
	}
	if float64(res.Height) > res.HeightBound {
		return nil, fmt.Errorf("%w: height %d > %.2f", ErrUnbalanced, res.Height, res.HeightBound)
	}

	r.log.With(
		logger.Int("len", res.FinalLen),
		logger.Int("height", res.Height),
		logger.Duration("elapsed", res.Elapsed),
	).Info("workload finished")
	return res, nil
}

func verify[K any](m *treemap.Map[K, int], res *Result) error {
	res.Verified++
	if err := m.Verify(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvariant, err)
	}
	return nil
}

// checkOrder 校验正向遍历严格递增，反向遍历与之镜像.
func checkOrder[K any](m *treemap.Map[K, int], compare treemap.Comparator[K]) error {
	keys := m.Keys()
	for i := 1; i < len(keys); i++ {
		if compare(keys[i-1], keys[i]) >= 0 {
			return fmt.Errorf("%w: %v before %v", ErrOrder, keys[i-1], keys[i])
		}
	}

	i := len(keys) - 1
	for it := m.ReverseBegin(); !it.Equal(m.ReverseEnd()); it = it.Next() {
		if i < 0 || compare(it.Key(), keys[i]) != 0 {
			return fmt.Errorf("%w: reverse traversal mismatch at %d", ErrOrder, i)
		}
		i--
	}
	if i != -1 {
		return fmt.Errorf("%w: reverse traversal visited %d of %d", ErrOrder, len(keys)-1-i, len(keys))
	}
	return nil
}

func intKeys(n int, order string, seed uint64) []int {
	keys := make([]int, n)
	switch strings.ToLower(order) {
	case OrderAscending:
		for i := range keys {
			keys[i] = i
		}
	case OrderDescending:
		for i := range keys {
			keys[i] = n - 1 - i
		}
	default:
		keys = rand.New(rand.NewPCG(seed, seed)).Perm(n)
	}
	return keys
}

func uuidKeys(n int, order string, seed uint64) ([]string, error) {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:8], seed)
	src := rand.NewChaCha8(s)

	keys := make([]string, n)
	for i := range keys {
		id, err := uuid.NewRandomFromReader(src)
		if err != nil {
			return nil, fmt.Errorf("generate uuid key: %w", err)
		}
		keys[i] = id.String()
	}

	switch strings.ToLower(order) {
	case OrderAscending:
		slices.Sort(keys)
	case OrderDescending:
		slices.Sort(keys)
		slices.Reverse(keys)
	}
	return keys, nil
}
