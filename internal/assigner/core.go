package assigner

import (
	"math"
	"math/rand"
)

func randFloat() float64 {
	return rand.Float64()
}

// randomInitChromosome 随机初始化一个染色体
func (a *Assigner) randomInitChromosome() *Chromosome {
	var genes []*Gene

	for _, paper := range a.papers {
		candidates := a.candidateMap[paper.ID]
		missing := int(a.parameters.ReviewersPerPaper) - len(a.existingMap[paper.ID])

		// 打乱候选顺序后取前若干个
		shuffled := make([]int64, len(candidates))
		copy(shuffled, candidates)
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		chosenNum := min(missing, len(shuffled))
		chosen := make([]int64, chosenNum)
		copy(chosen, shuffled[:chosenNum])

		genes = append(genes, &Gene{
			paperID:     paper.ID,
			reviewerIDs: chosen,
			requiredNum: int32(missing),
		})
	}

	return &Chromosome{
		genes: genes,
	}
}

/**
 * 计算染色体的适应度
 * fitness = - uncoveredPenalty - FairnessWeight * fairnessPenalty
 * 其中:
 * 		1. uncoveredPenalty 为缺口惩罚（论文缺少的审稿人数之和，确保每篇论文尽量配满）
 * 		2. fairnessPenalty 为公平性惩罚（审稿人负载的方差，确保工作量尽可能均衡）
 * 		3. FairnessWeight 为公平性权重，用于平衡覆盖率和公平性（由输入参数决定）
 */
func (a *Assigner) calcFitness(ch *Chromosome) {
	// 统计每个审稿人的总负载，包含已有的在审数量
	reviewerLoad := make(map[int64]float64)
	for reviewerID, load := range a.loadMap {
		reviewerLoad[reviewerID] = float64(load)
	}

	uncoveredPenalty := 0.0
	for _, gene := range ch.genes {
		uncoveredPenalty += float64(int(gene.requiredNum) - len(gene.reviewerIDs))
		for _, reviewerID := range gene.reviewerIDs {
			reviewerLoad[reviewerID]++
		}
	}

	// 计算 fairnessPenalty（即方差）
	variance := 0.0
	avgLoad := 0.0

	for _, load := range reviewerLoad {
		avgLoad += load
	}
	avgLoad /= float64(len(reviewerLoad))

	for _, load := range reviewerLoad {
		variance += math.Pow(load-avgLoad, 2)
	}
	variance /= float64(len(reviewerLoad))

	ch.fitness = -uncoveredPenalty - a.parameters.FairnessWeight*variance
}

// 使用轮盘赌来进行选择
func (a *Assigner) selectByRoulette(pop []*Chromosome) *Chromosome {
	sumFit := 0.0
	for _, ch := range pop {
		sumFit += ch.fitness
	}
	pick := rand.Float64() * sumFit
	partial := 0.0

	for _, ch := range pop {
		partial += ch.fitness
		if partial >= pick {
			return ch
		}
	}

	// 理论上不会运行到这个地方
	return pop[len(pop)-1]
}

// 单点交叉
func (a *Assigner) singlePointCrossover(ch1 *Chromosome, ch2 *Chromosome) {
	length1 := len(ch1.genes)
	length2 := len(ch2.genes)

	if length1 != length2 {
		// 按理来说两个染色体的长度应该能保证是相等的
		// 这里只是以防万一
		return
	}

	length := length1

	// 随机选择一个位置
	point := rand.Intn(length)

	// 交换两个染色体在 point 位置之后的基因
	for i := point; i < length; i++ {
		ch1.genes[i], ch2.genes[i] = ch2.genes[i], ch1.genes[i]
	}
}

// 变异
// 随机把某个建议中的审稿人替换为其他候选
func (a *Assigner) mutate(ch *Chromosome) {
	for i := range ch.genes {
		gene := ch.genes[i]

		for j := range gene.reviewerIDs {
			// 每个审稿人都有一定概率被替换
			if rand.Float64() > a.parameters.MutationRate {
				continue
			}

			var replacementCandidates []int64
			for _, candidateID := range a.candidateMap[gene.paperID] {
				if containsID(gene.reviewerIDs, candidateID) {
					// 已经在这篇论文的建议中了，不要放入候选
					continue
				}
				replacementCandidates = append(replacementCandidates, candidateID)
			}

			if len(replacementCandidates) > 0 {
				gene.reviewerIDs[j] = replacementCandidates[rand.Intn(len(replacementCandidates))]
			}
		}
	}
}
