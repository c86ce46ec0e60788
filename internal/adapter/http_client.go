package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-library-sync/internal/config"
	"github.com/MKhiriev/go-library-sync/internal/logger"
	"github.com/MKhiriev/go-library-sync/models"
)

const (
	headerAPIVersion          = "API-Version"
	headerLastModifiedVersion = "Last-Modified-Version"
	headerIfModifiedSince     = "If-Modified-Since-Version"
	headerIfUnmodifiedSince   = "If-Unmodified-Since-Version"

	apiVersion = "3"
)

type httpServerAdapter struct {
	client *resty.Client
	webdav *resty.Client
	apiKey string
	userID int64
	logger *logger.Logger
}

// NewHTTPServerAdapter builds the resty-backed [ServerAdapter]. The user id
// is extracted from the API key's claims at construction so that callers can
// scope requests before the first permissions round-trip.
func NewHTTPServerAdapter(cfg config.ClientAdapter, app config.ClientApp, log *logger.Logger) (ServerAdapter, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("invalid adapter base url: empty")
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader(headerAPIVersion, apiVersion).
		SetHeader("Authorization", "Bearer "+app.APIKey)

	var webdav *resty.Client
	if cfg.WebDavURL != "" {
		webdav = resty.New().
			SetBaseURL(strings.TrimRight(cfg.WebDavURL, "/")).
			SetTimeout(timeout)
	}

	userID, err := parseUserIDFromKey(app.APIKey)
	if err != nil {
		log.Warn().Err(err).Msg("api key carries no user id claim")
	}

	return &httpServerAdapter{
		client: cli,
		webdav: webdav,
		apiKey: app.APIKey,
		userID: userID,
		logger: log,
	}, nil
}

func (h *httpServerAdapter) UserID() int64 {
	return h.userID
}

// keyPermissionsResponse is the wire shape of the key endpoint.
type keyPermissionsResponse struct {
	UserID   int64  `json:"userID"`
	Username string `json:"username"`
	Name     string `json:"displayName"`
	Access   struct {
		User struct {
			Library bool `json:"library"`
			Notes   bool `json:"notes"`
			Write   bool `json:"write"`
			Files   bool `json:"files"`
		} `json:"user"`
		Groups map[string]struct {
			Library bool `json:"library"`
			Write   bool `json:"write"`
			Files   bool `json:"files"`
		} `json:"groups"`
	} `json:"access"`
}

func (h *httpServerAdapter) KeyPermissions(ctx context.Context) (models.KeyPermissions, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/keys/current")
	if err != nil {
		return models.KeyPermissions{}, fmt.Errorf("key permissions request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.KeyPermissions{}, err
	}

	var kp keyPermissionsResponse
	if err = json.Unmarshal(resp.Body(), &kp); err != nil {
		return models.KeyPermissions{}, fmt.Errorf("decode key permissions response: %w", err)
	}

	perms := models.KeyPermissions{
		UserID:        kp.UserID,
		Username:      kp.Username,
		DisplayName:   kp.Name,
		LibraryAccess: kp.Access.User.Library,
		NotesAccess:   kp.Access.User.Notes,
		WriteAccess:   kp.Access.User.Write,
		FileAccess:    kp.Access.User.Files,
		GroupAccess:   make(map[int64]models.GroupAccess),
	}
	for id, g := range kp.Access.Groups {
		access := models.GroupAccess{Library: g.Library, Write: g.Write, Files: g.Files}
		if id == "all" {
			perms.DefaultGroupAccess = access
			continue
		}
		groupID, convErr := strconv.ParseInt(id, 10, 64)
		if convErr != nil {
			continue
		}
		perms.GroupAccess[groupID] = access
	}

	if perms.UserID == 0 {
		perms.UserID = h.userID
	} else {
		h.userID = perms.UserID
	}

	return perms, nil
}

func (h *httpServerAdapter) GroupVersions(ctx context.Context, userID int64) (map[int64]int64, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("format", "versions").
		Get(fmt.Sprintf("/users/%d/groups", userID))
	if err != nil {
		return nil, fmt.Errorf("group versions request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var raw map[string]int64
	if err = json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("decode group versions response: %w", err)
	}

	versions := make(map[int64]int64, len(raw))
	for id, v := range raw {
		groupID, convErr := strconv.ParseInt(id, 10, 64)
		if convErr != nil {
			return nil, fmt.Errorf("decode group id %q: %w", id, convErr)
		}
		versions[groupID] = v
	}
	return versions, nil
}

// groupResponse is the wire shape of a single group.
type groupResponse struct {
	ID   int64 `json:"id"`
	Data struct {
		Name           string `json:"name"`
		Version        int64  `json:"version"`
		LibraryEditing string `json:"libraryEditing"`
		FileEditing    string `json:"fileEditing"`
	} `json:"data"`
}

func (h *httpServerAdapter) Group(ctx context.Context, groupID int64) (models.Group, int64, error) {
	resp, err := h.client.R().SetContext(ctx).Get(fmt.Sprintf("/groups/%d", groupID))
	if err != nil {
		return models.Group{}, 0, fmt.Errorf("group request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Group{}, 0, err
	}

	var gr groupResponse
	if err = json.Unmarshal(resp.Body(), &gr); err != nil {
		return models.Group{}, 0, fmt.Errorf("decode group response: %w", err)
	}

	group := models.Group{
		ID:              gr.ID,
		Name:            gr.Data.Name,
		Version:         gr.Data.Version,
		CanEditMetadata: gr.Data.LibraryEditing == "members",
		CanEditFiles:    gr.Data.FileEditing == "members",
	}
	return group, lastModifiedVersion(resp), nil
}

func (h *httpServerAdapter) ObjectVersions(ctx context.Context, lib models.LibraryID, object models.SyncObject, since int64, checkRemote bool) (map[string]int64, int64, error) {
	req := h.client.R().
		SetContext(ctx).
		SetQueryParam("format", "versions")
	if since > 0 {
		req.SetQueryParam("since", strconv.FormatInt(since, 10))
	}
	if !checkRemote && since > 0 {
		req.SetHeader(headerIfModifiedSince, strconv.FormatInt(since, 10))
	}

	resp, err := req.Get(fmt.Sprintf("/%s/%s", lib.APIPath(), objectPath(object)))
	if err != nil {
		return nil, 0, fmt.Errorf("object versions request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, 0, err
	}

	var versions map[string]int64
	if err = json.Unmarshal(resp.Body(), &versions); err != nil {
		return nil, 0, fmt.Errorf("decode object versions response: %w", err)
	}
	return versions, lastModifiedVersion(resp), nil
}

func (h *httpServerAdapter) Deletions(ctx context.Context, lib models.LibraryID, since int64) (models.Deletions, int64, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("since", strconv.FormatInt(since, 10)).
		Get(fmt.Sprintf("/%s/deleted", lib.APIPath()))
	if err != nil {
		return models.Deletions{}, 0, fmt.Errorf("deletions request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Deletions{}, 0, err
	}

	var deletions models.Deletions
	if err = json.Unmarshal(resp.Body(), &deletions); err != nil {
		return models.Deletions{}, 0, fmt.Errorf("decode deletions response: %w", err)
	}
	return deletions, lastModifiedVersion(resp), nil
}

func (h *httpServerAdapter) Settings(ctx context.Context, lib models.LibraryID, since int64) (map[string]json.RawMessage, int64, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("since", strconv.FormatInt(since, 10)).
		Get(fmt.Sprintf("/%s/settings", lib.APIPath()))
	if err != nil {
		return nil, 0, fmt.Errorf("settings request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, 0, err
	}

	var settings map[string]json.RawMessage
	if err = json.Unmarshal(resp.Body(), &settings); err != nil {
		return nil, 0, fmt.Errorf("decode settings response: %w", err)
	}
	return settings, lastModifiedVersion(resp), nil
}

func (h *httpServerAdapter) Objects(ctx context.Context, lib models.LibraryID, object models.SyncObject, keys []string) ([]models.RemoteObject, int64, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam(objectKeyParam(object), strings.Join(keys, ",")).
		Get(fmt.Sprintf("/%s/%s", lib.APIPath(), objectPath(object)))
	if err != nil {
		return nil, 0, fmt.Errorf("objects request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, 0, err
	}

	var objects []models.RemoteObject
	if err = json.Unmarshal(resp.Body(), &objects); err != nil {
		return nil, 0, fmt.Errorf("decode objects response: %w", err)
	}
	return objects, lastModifiedVersion(resp), nil
}

func (h *httpServerAdapter) SubmitUpdates(ctx context.Context, lib models.LibraryID, object models.SyncObject, version int64, params []json.RawMessage) (models.UpdatesResponse, int64, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(headerIfUnmodifiedSince, strconv.FormatInt(version, 10)).
		SetBody(params).
		Post(fmt.Sprintf("/%s/%s", lib.APIPath(), objectPath(object)))
	if err != nil {
		return models.UpdatesResponse{}, 0, fmt.Errorf("submit updates request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UpdatesResponse{}, 0, err
	}

	var ur models.UpdatesResponse
	if err = json.Unmarshal(resp.Body(), &ur); err != nil {
		return models.UpdatesResponse{}, 0, fmt.Errorf("decode submit updates response: %w", err)
	}
	return ur, lastModifiedVersion(resp), nil
}

func (h *httpServerAdapter) SubmitDeletions(ctx context.Context, lib models.LibraryID, object models.SyncObject, keys []string, version int64) (int64, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader(headerIfUnmodifiedSince, strconv.FormatInt(version, 10)).
		SetQueryParam(objectKeyParam(object), strings.Join(keys, ",")).
		Delete(fmt.Sprintf("/%s/%s", lib.APIPath(), objectPath(object)))
	if err != nil {
		return 0, fmt.Errorf("submit deletions request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return lastModifiedVersion(resp), nil
}

// uploadAuthorization is the wire shape of an upload authorization.
type uploadAuthorization struct {
	Exists    int               `json:"exists"`
	URL       string            `json:"url"`
	UploadKey string            `json:"uploadKey"`
	Params    map[string]string `json:"params"`
}

func (h *httpServerAdapter) UploadAttachment(ctx context.Context, upload models.AttachmentUpload) error {
	data, err := os.ReadFile(upload.Filename)
	if err != nil {
		return &models.SyncActionError{
			Kind:    models.ActionAttachmentMissing,
			Lib:     upload.Lib,
			Key:     upload.Key,
			Message: err.Error(),
		}
	}

	auth, err := h.authorizeUpload(ctx, upload)
	if err != nil {
		return err
	}
	if auth.Exists == 1 {
		return &models.SyncActionError{
			Kind: models.ActionAttachmentAlreadyUploaded,
			Lib:  upload.Lib,
			Key:  upload.Key,
		}
	}

	fileResp, err := h.client.R().
		SetContext(ctx).
		SetFormData(auth.Params).
		SetFileReader("file", upload.Filename, bytes.NewReader(data)).
		Post(auth.URL)
	if err != nil {
		return fmt.Errorf("upload file request: %w", err)
	}
	if err = mapHTTPError(fileResp); err != nil {
		return err
	}

	return h.registerUpload(ctx, upload, auth.UploadKey)
}

func (h *httpServerAdapter) authorizeUpload(ctx context.Context, upload models.AttachmentUpload) (uploadAuthorization, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(map[string]string{
			"md5":      upload.MD5,
			"mtime":    strconv.FormatInt(upload.Mtime, 10),
			"filename": upload.Filename,
			"filesize": strconv.FormatInt(upload.Size, 10),
		}).
		Post(fmt.Sprintf("/%s/items/%s/file", upload.Lib.APIPath(), upload.Key))
	if err != nil {
		return uploadAuthorization{}, fmt.Errorf("authorize upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		// 404 means the attachment item was never submitted, so the backend
		// cannot authorize an upload for it
		var respErr *ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return uploadAuthorization{}, &models.SyncActionError{
				Kind:    models.ActionItemNotSubmitted,
				Lib:     upload.Lib,
				Key:     upload.Key,
				Message: respErr.Body,
			}
		}
		return uploadAuthorization{}, err
	}

	var auth uploadAuthorization
	if err = json.Unmarshal(resp.Body(), &auth); err != nil {
		return uploadAuthorization{}, fmt.Errorf("decode upload authorization: %w", err)
	}
	return auth, nil
}

func (h *httpServerAdapter) registerUpload(ctx context.Context, upload models.AttachmentUpload, uploadKey string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(map[string]string{"upload": uploadKey}).
		Post(fmt.Sprintf("/%s/items/%s/file", upload.Lib.APIPath(), upload.Key))
	if err != nil {
		return fmt.Errorf("register upload request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) DeleteWebDavFiles(ctx context.Context, lib models.LibraryID, keys []string) ([]string, error) {
	if h.webdav == nil {
		return nil, errors.New("webdav storage is not configured")
	}

	var failed []string
	for _, key := range keys {
		resp, err := h.webdav.R().SetContext(ctx).Delete("/" + key + ".zip")
		if err != nil {
			failed = append(failed, key)
			continue
		}
		if resp.StatusCode() != http.StatusOK &&
			resp.StatusCode() != http.StatusNoContent &&
			resp.StatusCode() != http.StatusNotFound {
			failed = append(failed, key)
		}
	}
	return failed, nil
}

// mapHTTPError surfaces non-2xx responses as a [*ResponseError] so the sync
// classifier can act on the raw status. 401 additionally wraps
// [ErrUnauthorized] for callers that check the sentinel.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	respErr := &ResponseError{
		StatusCode: resp.StatusCode(),
		Body:       body,
		Version:    lastModifiedVersion(resp),
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return fmt.Errorf("%w: %w", ErrUnauthorized, respErr)
	}
	return respErr
}

func lastModifiedVersion(resp *resty.Response) int64 {
	v, err := strconv.ParseInt(resp.Header().Get(headerLastModifiedVersion), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func objectPath(object models.SyncObject) string {
	switch object {
	case models.CollectionObject:
		return "collections"
	case models.SearchObject:
		return "searches"
	case models.TrashObject:
		return "items/trash"
	default:
		return "items"
	}
}

func objectKeyParam(object models.SyncObject) string {
	switch object {
	case models.CollectionObject:
		return "collectionKey"
	case models.SearchObject:
		return "searchKey"
	default:
		return "itemKey"
	}
}

// parseUserIDFromKey extracts the user id from the API key's claims without
// verifying the signature. Verification happens server-side on every call.
func parseUserIDFromKey(apiKey string) (int64, error) {
	token, _, err := jwt.NewParser().ParseUnverified(apiKey, jwt.MapClaims{})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}
