package assigner

// Gene: 表示对某篇论文的审稿人分配决策
type Gene struct {
	paperID     int64
	reviewerIDs []int64 // 本次建议新增的审稿人，不包含已有的分配
	requiredNum int32   // 该论文还缺少的审稿人数量
}

// Chromosome: 一份完整的分配建议
type Chromosome struct {
	genes   []*Gene
	fitness float64
}

// 遗传算法参数
type Parameters struct {
	PopulationSize    int32   // 种群大小
	MaxGenerations    int32   // 最大迭代次数
	CrossoverRate     float64 // 交叉概率
	MutationRate      float64 // 变异概率
	EliteCount        int32   // 精英数量
	FairnessWeight    float64 // 公平性权重（审稿人负载均衡）
	ReviewersPerPaper int32   // 每篇论文期望的审稿人数量
}

// Suggestion 是返回给前端的一条分配建议，不直接落库
type Suggestion struct {
	PaperID     int64   `json:"paperID"`
	ReviewerIDs []int64 `json:"reviewerIDs"`
}
