package listings

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"bookify/db"
	"bookify/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var photoDir = "./static/listingpic"
var thumbDir = "./static/listingpic/thumb"

// UploadPhoto stores one wizard photo, generates a thumbnail, and appends the
// photo URL to the listing's photos array.
func UploadPhoto(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	uid := utils.GetUserIDFromRequest(r)
	if uid == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	listingID := ps.ByName("id")

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB limit
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "Photo file missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := filepath.Ext(handler.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		http.Error(w, "Unsupported file type", http.StatusBadRequest)
		return
	}

	buf, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Error reading file", http.StatusInternalServerError)
		return
	}
	img, err := imaging.Decode(bytes.NewReader(buf))
	if err != nil {
		http.Error(w, "Invalid image", http.StatusBadRequest)
		return
	}

	if err := os.MkdirAll(photoDir, 0o755); err != nil {
		http.Error(w, "Unable to save file", http.StatusInternalServerError)
		return
	}

	id := utils.GetUUID()
	filename := fmt.Sprintf("%s%s", id, ext)
	if err := os.WriteFile(filepath.Join(photoDir, filename), buf, 0o644); err != nil {
		http.Error(w, "Unable to save file", http.StatusInternalServerError)
		return
	}

	// Thumbnail, aspect ratio preserved. Best effort: the original is
	// already saved.
	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := saveThumb(thumb, filepath.Join(thumbDir, id+".jpg")); err != nil {
		log.Printf("thumbnail write failed for %s: %v", id, err)
	}

	photoURL := "/static/listingpic/" + filename

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	res, err := db.ListingsCollection.UpdateOne(ctx,
		bson.M{"id": listingID, "uid": uid},
		bson.M{"$push": bson.M{"photos": photoURL}, "$set": bson.M{"savedAt": time.Now()}},
	)
	if err != nil || res.MatchedCount == 0 {
		http.Error(w, "listing not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"photoUrl": photoURL,
		"thumbUrl": "/static/listingpic/thumb/" + id + ".jpg",
	})
}

func saveThumb(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return jpeg.Encode(out, img, &jpeg.Options{Quality: 85})
}
