package middlewares

import (
	"log"
	"net/http"
	"strings"
	"travelhub/src/db"
	"travelhub/src/models"
	"travelhub/src/types"
	"travelhub/src/utils"

	"github.com/gin-gonic/gin"
)

func bearerToken(ctx *gin.Context) string {
	header := ctx.Request.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func authenticate(ctx *gin.Context) (*models.User, error) {
	reqToken := bearerToken(ctx)
	if reqToken == "" {
		return nil, types.NewUnauthorizedError("authentication credentials were not provided", nil)
	}
	claims, err := utils.GetTokenIssuer().ParseAccess(reqToken)
	if err != nil {
		return nil, err
	}
	uid, err := utils.UserIDFromClaims(claims)
	if err != nil {
		return nil, err
	}
	user, err := utils.FindUser(db.GetDb(), uid)
	if err != nil {
		if types.AsAppError(err).Kind == types.ERR_NOT_FOUND {
			return nil, types.NewUnauthorizedError("user not found", err)
		}
		return nil, err
	}
	return user, nil
}

func setUser(ctx *gin.Context, user *models.User) {
	ctx.Set("id", user.ID)
	ctx.Set("preference", string(user.Preference))
	ctx.Set("user", user)
}

// AuthMiddleware requires a valid access token and loads its user.
func AuthMiddleware(ctx *gin.Context) {
	user, err := authenticate(ctx)
	if err != nil {
		appErr := types.AsAppError(err)
		if appErr.Kind == types.ERR_INTERNAL {
			log.Printf("[auth] Error loading user: %s\n", err.Error())
		} else {
			log.Printf("token error: %s\n", err.Error())
		}
		ctx.AbortWithStatusJSON(appErr.Status(), gin.H{"error": appErr.Message})
		return
	}
	setUser(ctx, user)
}

// OptionalAuthMiddleware loads the user when a valid token is sent and
// lets anonymous requests through.
func OptionalAuthMiddleware(ctx *gin.Context) {
	if bearerToken(ctx) == "" {
		return
	}
	if user, err := authenticate(ctx); err == nil {
		setUser(ctx, user)
	}
}

// RequireProvider rejects users whose preference is not provider.
func RequireProvider(ctx *gin.Context) {
	if ctx.GetString("preference") != string(types.PREFERENCE_PROVIDER) {
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "only provider accounts can manage this resource"})
		return
	}
}
