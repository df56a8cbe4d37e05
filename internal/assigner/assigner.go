package assigner

import (
	"fmt"
	"math"
	"sort"

	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
)

type Assigner struct {
	parameters   *Parameters
	reviewers    []*domain.User // 注意这个不是所有的 users，而是可以参与评审的审稿人
	papers       []*domain.Paper
	candidateMap map[int64][]int64 // {paperID: [可分配给这篇论文的 reviewerID...]}
	existingMap  map[int64][]int64 // {paperID: [已分配的 reviewerID...]}
	loadMap      map[int64]int     // {reviewerID: 已有的在审数量}
}

func New(parameters *Parameters, users []*domain.User, papers []*domain.Paper, existingReviews []*domain.Review) (*Assigner, error) {
	if parameters.ReviewersPerPaper <= 0 {
		return nil, fmt.Errorf("每篇论文的审稿人数量必须大于 0")
	}
	if parameters.EliteCount > parameters.PopulationSize {
		return nil, fmt.Errorf("精英数量不能超过种群大小")
	}

	a := &Assigner{
		parameters:   parameters,
		reviewers:    make([]*domain.User, 0),
		papers:       make([]*domain.Paper, 0),
		candidateMap: make(map[int64][]int64),
		existingMap:  make(map[int64][]int64),
		loadMap:      make(map[int64]int),
	}

	for _, user := range users {
		if isEligibleReviewer(user) {
			a.reviewers = append(a.reviewers, user)
			a.loadMap[user.ID] = 0
		}
	}

	if len(a.reviewers) == 0 {
		return nil, fmt.Errorf("没有可参与评审的审稿人")
	}

	for _, review := range existingReviews {
		a.existingMap[review.PaperID] = append(a.existingMap[review.PaperID], review.ReviewerID)
		if _, exists := a.loadMap[review.ReviewerID]; exists && !review.Completed {
			a.loadMap[review.ReviewerID]++
		}
	}

	for _, paper := range papers {
		// 已经出了结论的论文不再参与分配
		if paper.Status == domain.PaperStatusAccepted || paper.Status == domain.PaperStatusRejected {
			continue
		}
		if len(a.existingMap[paper.ID]) >= int(parameters.ReviewersPerPaper) {
			continue
		}

		candidates := make([]int64, 0, len(a.reviewers))
		for _, reviewer := range a.reviewers {
			if reviewer.ID == paper.AuthorID {
				// 作者不能评审自己的论文
				continue
			}
			if containsID(a.existingMap[paper.ID], reviewer.ID) {
				continue
			}
			candidates = append(candidates, reviewer.ID)
		}

		a.papers = append(a.papers, paper)
		a.candidateMap[paper.ID] = candidates
	}

	return a, nil
}

func (a *Assigner) Suggest() ([]*Suggestion, error) {
	if len(a.papers) == 0 {
		return []*Suggestion{}, nil
	}

	// 生成初始种群
	pop := make([]*Chromosome, a.parameters.PopulationSize)
	for i := 0; i < int(a.parameters.PopulationSize); i++ {
		pop[i] = a.randomInitChromosome()
		a.calcFitness(pop[i])
	}

	// 迭代
	bestChromosomeEver := &Chromosome{
		genes:   nil,
		fitness: -math.MaxFloat64,
	}

	for gen := 0; gen < int(a.parameters.MaxGenerations); gen++ {
		// 找到本代最佳样本
		genBestFit := pop[0].fitness
		genBestIndex := 0

		for i := 1; i < int(a.parameters.PopulationSize); i++ {
			if pop[i].fitness > genBestFit {
				genBestFit = pop[i].fitness
				genBestIndex = i
			}
		}

		if genBestFit > bestChromosomeEver.fitness {
			bestChromosomeEver.fitness = genBestFit
			// 这里需要使用深拷贝，防止后续繁殖的过程中导致指向的基因被修改
			bestChromosomeEver.genes = make([]*Gene, len(pop[genBestIndex].genes))
			for i := 0; i < len(pop[genBestIndex].genes); i++ {
				bestChromosomeEver.genes[i] = &Gene{
					paperID:     pop[genBestIndex].genes[i].paperID,
					reviewerIDs: make([]int64, len(pop[genBestIndex].genes[i].reviewerIDs)),
					requiredNum: pop[genBestIndex].genes[i].requiredNum,
				}
				copy(bestChromosomeEver.genes[i].reviewerIDs, pop[genBestIndex].genes[i].reviewerIDs)
			}
		}

		// 繁殖
		newPop := make([]*Chromosome, 0, a.parameters.PopulationSize)

		// 保留精英
		sort.Slice(pop, func(i, j int) bool {
			return pop[i].fitness > pop[j].fitness
		})
		newPop = append(newPop, pop[:int(a.parameters.EliteCount)]...)

		// 在剩余的染色体中进行交叉和变异
		for len(newPop) < int(a.parameters.PopulationSize) {
			// 选择两个父本
			p1 := a.selectByRoulette(pop)
			p2 := a.selectByRoulette(pop)

			if randFloat() < a.parameters.CrossoverRate {
				a.singlePointCrossover(p1, p2)
			}

			a.mutate(p1)
			a.mutate(p2)

			newPop = append(newPop, p1)

			if len(newPop) < int(a.parameters.PopulationSize) {
				newPop = append(newPop, p2)
			}
		}

		for i := 0; i < int(a.parameters.PopulationSize); i++ {
			pop[i] = newPop[i]
			a.calcFitness(pop[i])
		}
	}

	// 返回结果
	suggestions := make([]*Suggestion, 0, len(bestChromosomeEver.genes))
	for _, gene := range bestChromosomeEver.genes {
		suggestions = append(suggestions, &Suggestion{
			PaperID:     gene.paperID,
			ReviewerIDs: gene.reviewerIDs,
		})
	}

	// 还需要检查一下结果是否满足约束条件
	if err := a.validateSuggestions(suggestions); err != nil {
		return nil, err
	}

	return suggestions, nil
}

// validateSuggestions 检查建议中是否存在重复分配、作者自审或未知候选
func (a *Assigner) validateSuggestions(suggestions []*Suggestion) error {
	for _, suggestion := range suggestions {
		seen := make(map[int64]bool)
		for _, reviewerID := range suggestion.ReviewerIDs {
			if seen[reviewerID] {
				return fmt.Errorf("论文 %d 的建议中存在重复的审稿人 %d", suggestion.PaperID, reviewerID)
			}
			seen[reviewerID] = true

			if !containsID(a.candidateMap[suggestion.PaperID], reviewerID) {
				return fmt.Errorf("审稿人 %d 不是论文 %d 的合法候选", reviewerID, suggestion.PaperID)
			}
		}
	}
	return nil
}
