package assigner

import "github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"

func isEligibleReviewer(user *domain.User) bool {
	return user.Role == domain.RoleReviewer && user.IsActive
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
