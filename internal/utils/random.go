package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var roles = []domain.Role{
	domain.RoleOrganizer,
	domain.RoleReviewer,
	domain.RoleAuthor,
	domain.RoleAttendee,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

var paperTopics = []string{
	"分布式系统", "图神经网络", "联邦学习", "服务网格", "数据库内核",
	"编译优化", "形式化验证", "边缘计算", "推荐系统", "时序数据库",
}
var paperMethods = []string{
	"的一种高效实现", "中的一致性问题研究", "的性能建模与分析", "的自动化测试方法",
	"在大规模场景下的实践", "的容错机制设计", "的增量计算框架",
}
var paperKeywordPool = []string{
	"distributed systems", "consistency", "machine learning", "performance",
	"fault tolerance", "scheduling", "storage", "networking", "verification", "caching",
}

func GenerateRandomPaper(authorID int64, pdfURL string) *domain.Paper {
	topic := paperTopics[rand.Intn(len(paperTopics))]
	title := topic + paperMethods[rand.Intn(len(paperMethods))]

	// 随机挑 2~4 个关键词
	n := rand.Intn(3) + 2
	keywords := GenerateRandomSubset(paperKeywordPool, n)

	return &domain.Paper{
		Title:    title,
		Abstract: "本文围绕" + topic + "展开，摘要内容 " + GenerateRandomID(20, 10),
		Keywords: strings.Join(keywords, ","),
		PdfURL:   pdfURL,
		AuthorID: authorID,
	}
}

func GenerateRandomScore() int32 {
	return int32(rand.Intn(10) + 1)
}

func GenerateRandomComments() string {
	openings := []string{
		"论文选题有一定价值，", "实验部分较为扎实，", "写作清晰，",
		"方法新颖，", "相关工作梳理完整，",
	}
	closings := []string{
		"但实验对比不够充分。", "建议补充消融实验。", "建议改进图表的可读性。",
		"结论部分可以进一步展开。", "总体达到录用水平。",
	}
	return openings[rand.Intn(len(openings))] + closings[rand.Intn(len(closings))]
}

var registrationTypes = []domain.RegistrationType{
	domain.RegistrationTypeRegular,
	domain.RegistrationTypeStudent,
	domain.RegistrationTypeVirtual,
}

func GenerateRandomRegistration(userID int64) *domain.Registration {
	return &domain.Registration{
		UserID: userID,
		Type:   registrationTypes[rand.Intn(len(registrationTypes))],
		IsPaid: rand.Intn(2) == 0,
	}
}

// 使用 Fisher-Yates 洗牌算法来生成一个大小为 n 的随机子集
func GenerateRandomSubset(arr []string, n int) []string {
	arrCopy := append([]string{}, arr...) // 复制数组，避免修改原数组

	for i := 0; i < len(arrCopy)-1; i++ {
		j := rand.Intn(len(arrCopy)-i) + i
		arrCopy[i], arrCopy[j] = arrCopy[j], arrCopy[i]
	}

	if n > len(arrCopy) {
		n = len(arrCopy)
	}
	return arrCopy[:n]
}
