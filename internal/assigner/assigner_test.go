package assigner

import (
	"testing"

	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
)

func testParameters() *Parameters {
	return &Parameters{
		PopulationSize:    20,
		MaxGenerations:    30,
		CrossoverRate:     0.8,
		MutationRate:      0.1,
		EliteCount:        2,
		FairnessWeight:    1.0,
		ReviewersPerPaper: 2,
	}
}

func testUsers() []*domain.User {
	return []*domain.User{
		{ID: 1, Role: domain.RoleReviewer, IsActive: true},
		{ID: 2, Role: domain.RoleReviewer, IsActive: true},
		{ID: 3, Role: domain.RoleReviewer, IsActive: true},
		{ID: 4, Role: domain.RoleReviewer, IsActive: false}, // 已停用
		{ID: 5, Role: domain.RoleAuthor, IsActive: true},    // 不是审稿人
		{ID: 6, Role: domain.RoleAdmin, IsActive: true},
	}
}

func TestNewFiltersCandidates(t *testing.T) {
	papers := []*domain.Paper{
		{ID: 10, AuthorID: 5, Status: domain.PaperStatusSubmitted},
		{ID: 11, AuthorID: 1, Status: domain.PaperStatusSubmitted}, // 作者同时是审稿人
		{ID: 12, AuthorID: 5, Status: domain.PaperStatusAccepted},  // 已出结论
	}

	a, err := New(testParameters(), testUsers(), papers, nil)
	if err != nil {
		t.Fatalf("不期望出错: %v", err)
	}

	if len(a.reviewers) != 3 {
		t.Errorf("合法审稿人数量 = %d，期望 3", len(a.reviewers))
	}

	if len(a.papers) != 2 {
		t.Fatalf("待分配论文数量 = %d，期望 2", len(a.papers))
	}

	// 审稿人 1 是论文 11 的作者，不应该出现在它的候选里
	for _, id := range a.candidateMap[11] {
		if id == 1 {
			t.Error("作者不能成为自己论文的候选审稿人")
		}
	}

	// 已停用和非审稿人用户不应该出现在任何候选里
	for paperID, candidates := range a.candidateMap {
		for _, id := range candidates {
			if id == 4 || id == 5 || id == 6 {
				t.Errorf("论文 %d 的候选中出现了非法用户 %d", paperID, id)
			}
		}
	}
}

func TestNewSkipsFullyAssignedPapers(t *testing.T) {
	papers := []*domain.Paper{
		{ID: 10, AuthorID: 5, Status: domain.PaperStatusUnderReview},
	}
	existing := []*domain.Review{
		{PaperID: 10, ReviewerID: 1},
		{PaperID: 10, ReviewerID: 2},
	}

	a, err := New(testParameters(), testUsers(), papers, existing)
	if err != nil {
		t.Fatalf("不期望出错: %v", err)
	}

	if len(a.papers) != 0 {
		t.Errorf("已配满的论文不应该参与分配，但得到 %d 篇", len(a.papers))
	}
}

func TestNewWithoutReviewers(t *testing.T) {
	users := []*domain.User{
		{ID: 5, Role: domain.RoleAuthor, IsActive: true},
	}

	if _, err := New(testParameters(), users, nil, nil); err == nil {
		t.Fatal("没有审稿人时应该返回错误")
	}
}

func TestNewRejectsOversizedEliteCount(t *testing.T) {
	parameters := testParameters()
	parameters.EliteCount = parameters.PopulationSize + 1

	if _, err := New(parameters, testUsers(), nil, nil); err == nil {
		t.Fatal("精英数量超过种群大小时应该返回错误")
	}
}

func TestSuggest(t *testing.T) {
	papers := []*domain.Paper{
		{ID: 10, AuthorID: 5, Status: domain.PaperStatusSubmitted},
		{ID: 11, AuthorID: 5, Status: domain.PaperStatusSubmitted},
		{ID: 12, AuthorID: 1, Status: domain.PaperStatusUnderReview},
	}
	existing := []*domain.Review{
		{PaperID: 12, ReviewerID: 2},
	}

	a, err := New(testParameters(), testUsers(), papers, existing)
	if err != nil {
		t.Fatalf("不期望出错: %v", err)
	}

	suggestions, err := a.Suggest()
	if err != nil {
		t.Fatalf("生成建议失败: %v", err)
	}

	if len(suggestions) != 3 {
		t.Fatalf("建议数量 = %d，期望 3", len(suggestions))
	}

	for _, suggestion := range suggestions {
		seen := make(map[int64]bool)
		for _, reviewerID := range suggestion.ReviewerIDs {
			if seen[reviewerID] {
				t.Errorf("论文 %d 的建议中存在重复审稿人 %d", suggestion.PaperID, reviewerID)
			}
			seen[reviewerID] = true

			if !containsID(a.candidateMap[suggestion.PaperID], reviewerID) {
				t.Errorf("审稿人 %d 不是论文 %d 的合法候选", reviewerID, suggestion.PaperID)
			}
		}

		if len(suggestion.ReviewerIDs) > int(a.parameters.ReviewersPerPaper) {
			t.Errorf("论文 %d 被建议了 %d 位审稿人，超过上限", suggestion.PaperID, len(suggestion.ReviewerIDs))
		}
	}
}

func TestSuggestWithNoPendingPapers(t *testing.T) {
	a, err := New(testParameters(), testUsers(), nil, nil)
	if err != nil {
		t.Fatalf("不期望出错: %v", err)
	}

	suggestions, err := a.Suggest()
	if err != nil {
		t.Fatalf("不期望出错: %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("没有待分配论文时建议应该为空，但得到 %d 条", len(suggestions))
	}
}
