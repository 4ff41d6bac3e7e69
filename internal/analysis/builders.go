package analysis

import (
	"fmt"
	"strings"

	"caselens-mcp/internal/aggregate"
	"caselens-mcp/internal/field"
	"caselens-mcp/internal/temporal"
)

func buildTimeAnalysis(r *run) {
	r.addf("数据表 %s 包含以下关键字段：\n", r.ds.Name)
	r.addf("- 上报时间：案件的上报时间\n")
	r.addf("- 小类名称：案件的具体类型\n")
	r.addf("- 提取的道路名称：案件发生的位置\n")
	r.addf("数据总量：%d 条记录\n", len(r.ds.Rows))

	if col := r.binding.Column(field.RoleReportTime); col != "" {
		r.section("时间分析", func() {
			instants, stats := temporal.NormalizeColumn(r.ds.Column(col))

			r.addf("\n数据统计信息：\n")
			r.addf("总记录数：%d\n", stats.Original)
			r.addf("有效时间记录数：%d\n", stats.Valid)
			if ratio, ok := stats.SuccessRatio(); ok {
				r.addf("时间解析成功率：%.2f%%\n", ratio*100)
			}

			if len(instants) == 0 {
				r.note("警告：所有时间值均无法解析，无法进行时间维度分析。")
				return
			}

			daily := aggregate.GroupByUnit(instants, aggregate.UnitDay)
			hourly := aggregate.GroupByUnit(instants, aggregate.UnitHour)
			peaks := aggregate.TopN(hourly, 3)

			r.addf("\n日案件量趋势：\n%s", formatBuckets(daily))
			r.addf("\n小时级高峰时段分析：\n%s", formatBuckets(hourly))
			r.addf("\nTop 3 高峰时段：\n%s", formatBuckets(peaks))

			r.chart("daily", daily)
			r.chart("hourly", hourly)
			r.chart("peak_hours", peaks)
		})
	}

	r.countSection("案件类型分布", "category", field.RoleSubcategory)
	r.countSection("案件高发区域", "road", field.RoleRoad)
}

func buildSpaceAnalysis(r *run) {
	r.addf("数据表 %s 包含以下关键字段：\n", r.ds.Name)
	r.addf("- 地址描述：案件发生的详细地址\n")
	r.addf("- 所属街道：案件所属的街道\n")
	r.addf("- 所属社区：案件所属的社区\n")
	r.addf("- 所属片区：案件所属的片区\n")
	r.addf("- 小类名称：案件的具体类型\n")
	r.addf("数据总量：%d 条记录\n", len(r.ds.Rows))

	r.countSection("各街道案件密度", "street", field.RoleStreet)
	r.countSection("各社区案件密度", "community", field.RoleCommunity)
	r.countSection("各片区案件密度", "area", field.RoleDistrict)
	r.countSection("高发地址", "", field.RoleAddress)
	r.countSection("案件类型分布", "", field.RoleSubcategory)
}

func buildSourceAnalysis(r *run) {
	r.addf("数据表 %s 包含以下关键字段：\n", r.ds.Name)
	r.addf("- 问题来源：案件的来源渠道\n")
	r.addf("- 小类名称：案件的具体类型\n")
	r.addf("- 地址描述：案件发生的详细地址\n")
	r.addf("数据总量：%d 条记录\n", len(r.ds.Rows))

	r.countSection("案件来源分布", "source", field.RoleSource)
	r.countSection("案件类型分布", "", field.RoleSubcategory)
	r.countSection("高发地址", "", field.RoleAddress)
}

func buildTypeAnalysis(r *run) {
	r.addf("数据表 %s 包含以下关键字段：\n", r.ds.Name)
	r.addf("- 问题类型：案件的问题类型\n")
	r.addf("- 大类名称：案件的大类名称\n")
	r.addf("- 小类名称：案件的具体类型\n")
	r.addf("数据总量：%d 条记录\n", len(r.ds.Rows))

	r.countSection("问题类型分布", "", field.RoleProblemType)
	r.countSection("大类名称分布", "", field.RoleMajorCategory)
	r.countSection("小类名称分布", "type", field.RoleSubcategory)
}

func buildDuplicateAnalysis(r *run) {
	r.addf("数据表 %s 包含以下关键字段：\n", r.ds.Name)
	r.addf("- 问题描述：案件的问题描述\n")
	r.addf("- 地址描述：案件发生的详细地址\n")
	r.addf("数据总量：%d 条记录\n", len(r.ds.Rows))

	r.countSection("问题描述重复情况", "problem_duplicates", field.RoleProblemDesc)
	r.countSection("地址描述重复情况", "address_duplicates", field.RoleAddress)

	addrCol := r.binding.Column(field.RoleAddress)
	if addrCol != "" {
		r.section("地址描述类型分析", func() {
			split := make(map[string]int)
			for _, v := range r.ds.Column(addrCol) {
				if v.IsNull() {
					continue
				}
				if aggregate.ClassifyAddress(v.String()) == aggregate.PrecisionPrecise {
					split["精准地址"]++
				} else {
					split["模糊地址"]++
				}
			}
			buckets := []aggregate.Bucket{
				{Value: "精准地址", Count: split["精准地址"]},
				{Value: "模糊地址", Count: split["模糊地址"]},
			}
			r.addf("\n地址描述类型占比：\n%s", formatBuckets(buckets))
			r.chart("address_type_distribution", buckets)
		})
	}

	problemCol := r.binding.Column(field.RoleProblemDesc)
	if problemCol != "" && addrCol != "" {
		r.section("组合重复分析", func() {
			summary := aggregate.FindRepeats(r.ds, problemCol, addrCol, aggregate.TopDefault)

			var b strings.Builder
			for _, g := range summary.RepeatGroups {
				fmt.Fprintf(&b, "%s | %s：%d\n", g.Problem, g.Address, g.Count)
			}
			if b.Len() == 0 {
				b.WriteString("无\n")
			}
			r.addf("\n问题和地址组合重复情况（前10）：\n%s", b.String())

			var categories []aggregate.Bucket
			for name, count := range summary.CategorySplit {
				categories = append(categories, aggregate.Bucket{Value: name, Count: count})
			}
			categories = aggregate.TopN(categories, 0)
			r.addf("\n重复案件违规类型占比：\n%s", formatBuckets(categories))

			r.chart("combined_duplicates", summary.RepeatGroups)
			r.chart("violation_categories", categories)
		})
	}
}

func buildMonthlyComparison(r *run) {
	r.addf("数据表 %s 包含以下关键字段：\n", r.ds.Name)
	r.addf("- 捆绑处置截止时间：案件的处置截止时间，用于判断案件所属月份\n")
	r.addf("- 小类名称：案件的具体类型\n")
	r.addf("- 问题描述：案件的问题描述\n")
	r.addf("数据总量：%d 条记录\n", len(r.ds.Rows))

	timeCol := r.binding.Column(field.RoleDeadline)
	if timeCol == "" {
		r.note("警告：未找到捆绑处置截止时间字段，无法进行月度对比分析。")
		return
	}

	r.section("月度对比分析", func() {
		catCols := []string{
			r.binding.Column(field.RoleSubcategory),
			r.binding.Column(field.RoleProblemDesc),
		}
		cmp := aggregate.CompareWindows(r.ds, timeCol, catCols)

		r.addf("\n数据统计信息：\n")
		r.addf("总记录数：%d\n", cmp.ParseStats.Original)
		r.addf("有效时间记录数：%d\n", cmp.ParseStats.Valid)
		if ratio, ok := cmp.ParseStats.SuccessRatio(); ok {
			r.addf("时间解析成功率：%.2f%%\n", ratio*100)
		}

		if cmp.Insufficient {
			r.note(fmt.Sprintf("数据不足：仅发现 %d 个月份（%s），月度对比至少需要两个月的数据。",
				len(cmp.MonthsFound), strings.Join(cmp.MonthsFound, "、")))
			return
		}

		r.addf("\n案件数量变化：\n")
		r.addf("%s案件数：%d\n", cmp.PreviousMonth, cmp.PreviousCount)
		r.addf("%s案件数：%d\n", cmp.RecentMonth, cmp.RecentCount)
		r.addf("变化量：%d\n", cmp.Delta)
		r.addf("变化率：%.2f%%\n", cmp.ChangeRate)

		r.chart("monthly_comparison", []aggregate.Bucket{
			{Value: cmp.PreviousMonth, Count: cmp.PreviousCount},
			{Value: cmp.RecentMonth, Count: cmp.RecentCount},
		})

		for _, shift := range cmp.Shifts {
			r.addf("\n%s案件分布（前10，按 %s）：\n%s", cmp.PreviousMonth, shift.Field, formatBuckets(shift.Previous))
			r.addf("\n%s案件分布（前10，按 %s）：\n%s", cmp.RecentMonth, shift.Field, formatBuckets(shift.Recent))
			r.addf("\n变化情况（%s）：\n", shift.Field)
			r.addf("新增类型：%s\n", joinOrNone(shift.Emerging))
			r.addf("减少类型：%s\n", joinOrNone(shift.Receding))
		}
		r.chart("case_size_comparison", cmp.Shifts)
	})
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "无"
	}
	return strings.Join(values, "、")
}
