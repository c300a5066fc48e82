package cleaning

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Pilo-pillow/dataclean/dataframe"
	"golang.org/x/sync/errgroup"
)

// Step 是流水线中的一个清洗步骤。
type Step interface {
	Name() string
	Apply(ctx context.Context, df dataframe.DataFrame) (dataframe.DataFrame, error)
}

type funcStep struct {
	name string
	fn   func(dataframe.DataFrame) (dataframe.DataFrame, error)
}

func (s funcStep) Name() string { return s.name }

func (s funcStep) Apply(_ context.Context, df dataframe.DataFrame) (dataframe.DataFrame, error) {
	return s.fn(df)
}

// StepFunc 把一个普通函数包装为 Step。
func StepFunc(name string, fn func(dataframe.DataFrame) (dataframe.DataFrame, error)) Step {
	return funcStep{name: name, fn: fn}
}

// Replace 返回执行 ReplaceValues 的步骤。
func Replace(columns []string, replacements Replacements) Step {
	return StepFunc("replace_values", func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
		return ReplaceValues(df, columns, replacements)
	})
}

// DropColumns 返回执行 DropColumnsMissing 的步骤。
func DropColumns(threshold float64) Step {
	return StepFunc("drop_columns_missing", func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
		return DropColumnsMissing(df, threshold)
	})
}

// DropRows 返回执行 DropRowsMissing 的步骤。
func DropRows(threshold float64) Step {
	return StepFunc("drop_rows_missing", func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
		return DropRowsMissing(df, threshold)
	})
}

// Impute 返回执行 ImputeMode 的步骤。
func Impute(columns ...string) Step {
	return StepFunc("impute_mode", func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
		return ImputeMode(df, columns...)
	})
}

// Pipeline 按顺序执行一组清洗步骤。
type Pipeline struct {
	steps []Step
}

// NewPipeline 创建包含给定步骤的流水线。
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Add 在流水线末尾追加一个步骤。
func (p *Pipeline) Add(s Step) *Pipeline {
	p.steps = append(p.steps, s)
	return p
}

// Len 返回步骤个数。
func (p *Pipeline) Len() int {
	return len(p.steps)
}

// Run 依次执行每个步骤，前一步的输出作为后一步的输入。
// 每个步骤开始前检查 ctx，任一步骤失败时立即返回带有步骤名的错误。
func (p *Pipeline) Run(ctx context.Context, df dataframe.DataFrame) (dataframe.DataFrame, error) {
	cur := df
	for i, s := range p.steps {
		if err := ctx.Err(); err != nil {
			return dataframe.DataFrame{}, err
		}
		next, err := s.Apply(ctx, cur)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("step %d (%s): %w", i, s.Name(), err)
		}
		rows, cols := next.Dims()
		slog.Debug("清洗步骤完成", "step", s.Name(), "rows", rows, "cols", cols)
		cur = next
	}
	return cur, nil
}

// RunAll 并发地对多个 DataFrame 执行流水线，结果与输入一一对应。
// limit 限制同时处理的 DataFrame 个数，小于等于 0 时不限制。
// 任一 DataFrame 失败时取消其余处理并返回第一个错误。
func (p *Pipeline) RunAll(ctx context.Context, dfs []dataframe.DataFrame, limit int) ([]dataframe.DataFrame, error) {
	out := make([]dataframe.DataFrame, len(dfs))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, df := range dfs {
		g.Go(func() error {
			res, err := p.Run(gctx, df)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
