package narrative

// Analysis type tags understood by the prompt table. Anything else gets the
// generic pair.
const (
	AnalysisTime       = "time_analysis"
	AnalysisSpace      = "space_analysis"
	AnalysisSource     = "source_analysis"
	AnalysisType       = "type_analysis"
	AnalysisDuplicate  = "duplicate_analysis"
	AnalysisMonthly    = "monthly_comparison"
	AnalysisDepartment = "department_score"
)

type promptPair struct {
	system string
	task   string
}

var promptTable = map[string]promptPair{
	AnalysisTime: {
		system: "你是一个专业的数据分析助手，擅长分析案件时间分布数据。请根据提供的数据摘要，生成详细的时间分析报告。",
		task: "分析要求：\n1. 日案件量趋势分析\n2. 高峰时段分析（小时级）\n3. 提供相关数据洞察和建议\n\n" +
			"注意：只需要分析日案件量趋势和高峰时段，不需要分析月度、周度或其他时间维度。",
	},
	AnalysisSpace: {
		system: "你是一个专业的数据分析助手，擅长分析案件空间分布数据。请根据提供的数据摘要，生成详细的空间分析报告。",
		task: "分析要求：\n1. 各街道/社区/片区案件密度分析\n2. 高发区域热力图分析\n" +
			"3. 重点关注地址描述、所属街道、所属社区、所属片区以及小类名称字段\n4. 提供相关数据洞察和建议",
	},
	AnalysisSource: {
		system: "你是一个专业的数据分析助手，擅长分析案件来源数据。请根据提供的数据摘要，生成详细的案件来源分析报告。",
		task:   "分析要求：\n1. 案件来源分布分析\n2. 不同来源渠道的案件特征分析\n3. 重点关注问题来源字段\n4. 提供相关数据洞察和建议",
	},
	AnalysisType: {
		system: "你是一个专业的数据分析助手，擅长分析案件类型数据。请根据提供的数据摘要，生成详细的案件类型分析报告。",
		task: "分析要求：\n1. 主要案件类型特点分析\n2. 案件类型分布规律分析\n" +
			"3. 重点关注问题类型、大类名称、小类名称字段\n4. 提供相关数据洞察和建议\n5. 返回图表和分析内容",
	},
	AnalysisDuplicate: {
		system: "你是一个专业的数据分析助手，擅长分析案件重复情况。请根据提供的数据摘要，生成详细的重复案件分析报告。",
		task: "分析要求：\n1. 基于问题描述和地址描述字段分析案件重复情况\n2. 识别高重复的案件群体\n" +
			"3. 分析重复案件的特征和规律\n4. 提供相关数据洞察和建议\n5. 返回高重复案件TOP列表\n6. 返回图表和分析内容",
	},
	AnalysisMonthly: {
		system: "你是一个专业的数据分析助手，擅长分析案件月度对比数据。请根据提供的数据摘要，生成详细的月度对比分析报告。",
		task: "分析要求：\n1. 基于捆绑处置截止时间字段分析上月与本月案件数量的变化\n2. 分析案件大小类别变化的情况\n" +
			"3. 分析哪些问题变突出了，哪些问题有所下降\n4. 提供相关数据洞察和建议\n5. 基于案件重复情况进行分析\n6. 返回图表和分析内容",
	},
	AnalysisDepartment: {
		system: "你是一个专业的数据分析助手，擅长分析部门案件处置绩效数据。请根据提供的数据摘要，生成详细的部门考核分析报告。",
		task:   "分析要求：\n1. 各单位综合得分与排名分析\n2. 按时办结率、超期率、延期与返工情况分析\n3. 提供相关数据洞察和建议",
	},
}

var genericPrompt = promptPair{
	system: "你是一个专业的数据分析助手，擅长分析案件数据。请根据提供的数据摘要，生成详细的分析报告。",
	task:   "分析要求：\n1. 基于数据特征进行全面分析\n2. 提供相关数据洞察和建议",
}

// buildPrompts assembles the system and user messages for one call.
func buildPrompts(prompt, dataSummary, analysisType string) (system, user string) {
	pair, ok := promptTable[analysisType]
	if !ok {
		pair = genericPrompt
	}
	user = "请分析以下案件数据：\n" + prompt + "\n\n数据摘要：" + dataSummary + "\n\n" + pair.task
	return pair.system, user
}
