package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"travelhub/src/common"
	"travelhub/src/config"
	"travelhub/src/db"
	"travelhub/src/lib"
	"travelhub/src/lib/mailer"
	"travelhub/src/models"
	"travelhub/src/types"
	"travelhub/src/utils"

	"github.com/gin-gonic/gin"
)

func failure[T any](method string, err error) (*T, int, error) {
	appErr := types.AsAppError(err)
	lib.IncAuthAttempt(method, "failure")
	return nil, appErr.Status(), err
}

func authResponse(ctx *gin.Context, method string, user *models.User, isNew *bool, status int) (*types.APIResponseAuth, int, error) {
	tokens, err := utils.GetTokenIssuer().Issue(ctx.Request.Context(), user)
	if err != nil {
		return failure[types.APIResponseAuth](method, err)
	}
	lib.IncAuthAttempt(method, "success")
	return &types.APIResponseAuth{
		User:      common.SerializeUser(user),
		Token:     tokens.Token,
		Refresh:   tokens.Refresh,
		IsNewUser: isNew,
	}, status, nil
}

func resolveProfile(ctx *gin.Context, method string, provider string, profile *types.ProviderProfile, tokens types.ProviderTokens) (*types.APIResponseAuth, int, error) {
	user, isNew, err := utils.ResolveOAuthUser(db.GetDb(), provider, *profile, tokens, config.Get().TokenKey)
	if err != nil {
		return failure[types.APIResponseAuth](method, err)
	}
	if isNew {
		log.Printf("[auth] New user [%d] signed up with %s\n", user.ID, provider)
	}
	return authResponse(ctx, method, user, &isNew, http.StatusOK)
}

func AuthGoogle(ctx *gin.Context) (*types.APIResponseAuth, int, error) {
	var body types.GoogleAuthRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return failure[types.APIResponseAuth]("google", common.BindingError(err))
	}
	profile, err := lib.GetOAuthClient().VerifyGoogleCredential(ctx.Request.Context(), body.Credential)
	if err != nil {
		return failure[types.APIResponseAuth]("google", err)
	}
	return resolveProfile(ctx, "google", config.PROVIDER_GOOGLE, profile, types.ProviderTokens{})
}

func AuthFacebook(ctx *gin.Context) (*types.APIResponseAuth, int, error) {
	var body types.FacebookAuthRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return failure[types.APIResponseAuth]("facebook", common.BindingError(err))
	}
	profile, err := lib.GetOAuthClient().FetchProfile(ctx.Request.Context(), config.PROVIDER_FACEBOOK, body.AccessToken)
	if err != nil {
		return failure[types.APIResponseAuth]("facebook", err)
	}
	return resolveProfile(ctx, "facebook", config.PROVIDER_FACEBOOK, profile, types.ProviderTokens{AccessToken: body.AccessToken})
}

// AuthOAuthCallback completes the authorization-code flow for any configured provider.
func AuthOAuthCallback(ctx *gin.Context) (*types.APIResponseAuth, int, error) {
	var body types.OAuthCallbackRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return failure[types.APIResponseAuth]("callback", common.BindingError(err))
	}
	if _, ok := config.Get().Provider(body.Provider); !ok {
		return failure[types.APIResponseAuth]("callback", types.NewUnsupportedProviderError(body.Provider))
	}
	client := lib.GetOAuthClient()
	tokens, err := client.Exchange(ctx.Request.Context(), body.Provider, body.Code, body.RedirectURI)
	if err != nil {
		return failure[types.APIResponseAuth]("callback", err)
	}
	profile, err := client.FetchProfile(ctx.Request.Context(), body.Provider, tokens.AccessToken)
	if err != nil {
		return failure[types.APIResponseAuth]("callback", err)
	}
	return resolveProfile(ctx, "callback", body.Provider, profile, *tokens)
}

func AuthLogin(ctx *gin.Context) (*types.APIResponseAuth, int, error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return failure[types.APIResponseAuth]("password", common.BindingError(err))
	}
	user, err := utils.AuthenticateUser(db.GetDb(), body.Email, body.Password)
	if err != nil {
		return failure[types.APIResponseAuth]("password", err)
	}
	return authResponse(ctx, "password", user, nil, http.StatusOK)
}

func AuthRegister(ctx *gin.Context) (*types.APIResponseAuth, int, error) {
	var body types.RegisterRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return failure[types.APIResponseAuth]("register", common.BindingError(err))
	}
	user, err := utils.RegisterUser(db.GetDb(), &body)
	if err != nil {
		return failure[types.APIResponseAuth]("register", err)
	}
	if mc := config.Get().Mail; mc.Enabled && user.Email != nil {
		go sendWelcomeMail(mc, user.DisplayName(), *user.Email)
	}
	isNew := true
	return authResponse(ctx, "register", user, &isNew, http.StatusCreated)
}

func sendWelcomeMail(mc config.MailConfig, name string, email string) {
	err := mailer.Deliver(context.Background(), mc, &lib.SendMailInput{
		To:      []string{email},
		Subject: "Welcome to TravelHub",
		Body:    fmt.Sprintf("Hi %s,\n\nYour TravelHub account is ready. Verify your email from the app to start booking.\n", name),
	})
	if err != nil {
		log.Printf("[mail] Error sending welcome mail: %s\n", err.Error())
	}
}

// AuthRefresh rotates a refresh token into a new pair.
func AuthRefresh(ctx *gin.Context) (*types.APIResponseTokens, int, error) {
	var body types.RefreshRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return failure[types.APIResponseTokens]("refresh", common.BindingError(err))
	}
	issuer := utils.GetTokenIssuer()
	claims, err := issuer.ConsumeRefresh(ctx.Request.Context(), body.Refresh)
	if err != nil {
		return failure[types.APIResponseTokens]("refresh", err)
	}
	uid, err := utils.UserIDFromClaims(claims)
	if err != nil {
		return failure[types.APIResponseTokens]("refresh", err)
	}
	user, err := utils.FindUser(db.GetDb(), uid)
	if err != nil {
		return failure[types.APIResponseTokens]("refresh", types.NewUnauthorizedError("invalid or expired token", err))
	}
	tokens, err := issuer.Issue(ctx.Request.Context(), user)
	if err != nil {
		return failure[types.APIResponseTokens]("refresh", err)
	}
	lib.IncAuthAttempt("refresh", "success")
	return tokens, http.StatusOK, nil
}

func AuthMe(ctx *gin.Context) (*types.APIResponseUser, int, error) {
	val, ok := ctx.Get("user")
	user, _ := val.(*models.User)
	if !ok || user == nil {
		return nil, http.StatusUnauthorized, types.NewUnauthorizedError("authentication credentials were not provided", nil)
	}
	return common.SerializeUser(user), http.StatusOK, nil
}
