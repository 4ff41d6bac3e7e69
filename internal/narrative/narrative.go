// Package narrative turns structured analysis output into free-text
// commentary via an external text-generation service. The rest of the
// system never parses the returned text; a failure string is as valid a
// result as model output.
package narrative

import "context"

// Assembler produces commentary for one analysis. Implementations return a
// sentinel failure string instead of an error when the service is
// unreachable after bounded retries.
type Assembler interface {
	Commentary(ctx context.Context, prompt, dataSummary, analysisType string) string
}

// Disabled is the assembler used when no provider is configured.
type Disabled struct{}

func (Disabled) Commentary(ctx context.Context, prompt, dataSummary, analysisType string) string {
	return "未配置大模型服务，仅返回结构化分析结果。"
}
