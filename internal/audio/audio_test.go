package audio

import (
	"path/filepath"
	"testing"
)

func TestPlanChunks(t *testing.T) {
	tests := []struct {
		name         string
		totalSeconds float64
		chunkSeconds float64
		wantCount    int
		wantLastEnd  float64
	}{
		{"even split", 180, 60, 3, 180},
		{"remainder chunk", 150, 60, 3, 150},
		{"single short file", 30, 60, 1, 30},
		{"exact single chunk", 60, 60, 1, 60},
		{"empty file", 0, 60, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := planChunks(tt.totalSeconds, tt.chunkSeconds,
				"/tmp/lecture.wav", "/tmp/out")

			if len(jobs) != tt.wantCount {
				t.Fatalf("expected %d chunks, got %d", tt.wantCount, len(jobs))
			}
			if len(jobs) == 0 {
				return
			}

			last := jobs[len(jobs)-1]
			if last.endSeconds != tt.wantLastEnd {
				t.Errorf("expected last end %v, got %v",
					tt.wantLastEnd, last.endSeconds)
			}

			// chunks must tile the recording without gaps
			for i, job := range jobs {
				if job.index != i {
					t.Errorf("chunk %d: expected index %d, got %d",
						i, i, job.index)
				}
				if i > 0 && job.startSeconds != jobs[i-1].endSeconds {
					t.Errorf("chunk %d: gap between %v and %v",
						i, jobs[i-1].endSeconds, job.startSeconds)
				}
			}
		})
	}
}

func TestPlanChunksNaming(t *testing.T) {
	jobs := planChunks(120, 60, "/media/talk.wav", "/tmp/chunks")
	if len(jobs) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(jobs))
	}

	want0 := filepath.Join("/tmp/chunks", "talk_chunk_000.wav")
	if jobs[0].chunkPath != want0 {
		t.Errorf("expected %q, got %q", want0, jobs[0].chunkPath)
	}
	want1 := filepath.Join("/tmp/chunks", "talk_chunk_001.wav")
	if jobs[1].chunkPath != want1 {
		t.Errorf("expected %q, got %q", want1, jobs[1].chunkPath)
	}
}

func TestIsVideoFile(t *testing.T) {
	videos := []string{
		"lecture.mp4", "talk.MKV", "clip.webm", "/path/to/video.mov",
		"old.avi", "phone.3gp",
	}
	for _, path := range videos {
		if !IsVideoFile(path) {
			t.Errorf("expected %q to be a video file", path)
		}
	}

	notVideos := []string{"audio.mp3", "notes.txt", "subs.srt", "noext"}
	for _, path := range notVideos {
		if IsVideoFile(path) {
			t.Errorf("expected %q to not be a video file", path)
		}
	}
}

func TestIsAudioFile(t *testing.T) {
	audios := []string{"talk.mp3", "raw.WAV", "music.flac", "voice.m4a"}
	for _, path := range audios {
		if !IsAudioFile(path) {
			t.Errorf("expected %q to be an audio file", path)
		}
	}

	if IsAudioFile("video.mp4") {
		t.Error("mp4 must not be classified as audio")
	}
}

func TestIsMediaFile(t *testing.T) {
	if !IsMediaFile("a.mp4") || !IsMediaFile("b.wav") {
		t.Error("expected media files to be recognized")
	}
	if IsMediaFile("c.pdf") {
		t.Error("pdf is not a media file")
	}
}
