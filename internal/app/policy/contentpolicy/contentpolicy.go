// internal/app/policy/contentpolicy/contentpolicy.go
//
// Ownership and tier rules for posts and comments.
package contentpolicy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parivartan/platform/internal/app/system/roles"
)

// CanPost reports whether the role may create feed posts. The USER tier
// reads the feed but does not write to it.
func CanPost(role string) bool {
	return roles.IsAuthorized(role)
}

// CanManagePost reports whether the caller may edit or delete a post:
// admins and the post's owner.
func CanManagePost(role string, postOwner, caller primitive.ObjectID) bool {
	if roles.IsAdmin(role) {
		return true
	}
	return postOwner == caller
}

// CanDeleteComment reports whether the caller may delete a comment:
// admins, the post's owner (moderating their own thread), or the
// comment's author.
func CanDeleteComment(role string, postOwner, commentOwner, caller primitive.ObjectID) bool {
	if roles.IsAdmin(role) {
		return true
	}
	return postOwner == caller || commentOwner == caller
}
