package content

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chris/coin-ledger/pkg/api"
	"github.com/chris/coin-ledger/pkg/handlers/respond"
	"github.com/chris/coin-ledger/pkg/ledger"
	"github.com/chris/coin-ledger/pkg/mapping"
	"github.com/chris/coin-ledger/pkg/models"
)

// PlayReward is the number of coins credited for finishing a video or song.
const PlayReward = ledger.PlayReward

// Catalog is the read side of the content catalog.
type Catalog interface {
	GetVideo(ctx context.Context, id string) (*models.Video, error)
	ListVideos(ctx context.Context, category string) ([]models.Video, error)
	GetSong(ctx context.Context, id string) (*models.Song, error)
	ListSongs(ctx context.Context, category string) ([]models.Song, error)
}

// ContentHandler serves the content catalog and credits plays.
type ContentHandler struct {
	Catalog Catalog
	Ledger  *ledger.Service
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(catalog Catalog, service *ledger.Service) *ContentHandler {
	return &ContentHandler{Catalog: catalog, Ledger: service}
}

func (h *ContentHandler) ListVideos(w http.ResponseWriter, r *http.Request, params api.ListVideosParams) {
	videos, err := h.Catalog.ListVideos(r.Context(), deref(params.Category))
	if err != nil {
		respond.Error(w, err, "retrieve videos")
		return
	}

	apiVideos := make([]*api.Video, len(videos))
	for i := range videos {
		apiVideos[i] = mapping.ToApiVideo(&videos[i])
	}
	respond.JSON(w, http.StatusOK, apiVideos)
}

func (h *ContentHandler) ListSongs(w http.ResponseWriter, r *http.Request, params api.ListSongsParams) {
	songs, err := h.Catalog.ListSongs(r.Context(), deref(params.Category))
	if err != nil {
		respond.Error(w, err, "retrieve songs")
		return
	}

	apiSongs := make([]*api.Song, len(songs))
	for i := range songs {
		apiSongs[i] = mapping.ToApiSong(&songs[i])
	}
	respond.JSON(w, http.StatusOK, apiSongs)
}

// WatchVideo credits the viewer for a finished video.
func (h *ContentHandler) WatchVideo(w http.ResponseWriter, r *http.Request, videoId string, params api.WatchVideoParams) {
	video, err := h.Catalog.GetVideo(r.Context(), videoId)
	if err != nil {
		respond.Error(w, err, "retrieve video")
		return
	}

	h.credit(w, r, ledger.EarnRequest{
		UserID:      params.UserId,
		Amount:      PlayReward,
		Source:      models.SourceVideo,
		SourceID:    &video.Id,
		Description: fmt.Sprintf("Watched: %s", video.Title),
	})
}

// ListenToSong credits the listener for a finished song.
func (h *ContentHandler) ListenToSong(w http.ResponseWriter, r *http.Request, songId string, params api.ListenToSongParams) {
	song, err := h.Catalog.GetSong(r.Context(), songId)
	if err != nil {
		respond.Error(w, err, "retrieve song")
		return
	}

	h.credit(w, r, ledger.EarnRequest{
		UserID:      params.UserId,
		Amount:      PlayReward,
		Source:      models.SourceSong,
		SourceID:    &song.Id,
		Description: fmt.Sprintf("Listened to: %s", song.Title),
	})
}

func (h *ContentHandler) credit(w http.ResponseWriter, r *http.Request, req ledger.EarnRequest) {
	tx, err := h.Ledger.Earn(r.Context(), req)
	if err != nil {
		respond.Error(w, err, "earn coins")
		return
	}
	respond.JSON(w, http.StatusCreated, mapping.ToApiTransaction(tx))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
