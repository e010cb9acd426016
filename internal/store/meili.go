package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/meilisearch/meilisearch-go"

	"github.com/muninn-kg/muninn/internal/logseq"
)

// Meili is the Meilisearch-backed document store. An upsert is an
// add-documents task keyed by "id"; the call returns once Meilisearch
// reports the task succeeded, so a completed upsert is readable.
type Meili struct {
	client *meilisearch.Client
	files  *meilisearch.Index
	blocks *meilisearch.Index
}

// NewMeili connects to a Meilisearch instance.
func NewMeili(url, apiKey string) *Meili {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   url,
		APIKey: apiKey,
	})
	return &Meili{
		client: client,
		files:  client.Index(FilesCollection),
		blocks: client.Index(BlocksCollection),
	}
}

// UpsertFiles writes files to the "files" index and waits for the task.
func (m *Meili) UpsertFiles(ctx context.Context, files []*logseq.File) error {
	return m.addDocuments(ctx, m.files, files)
}

// UpsertBlocks writes blocks to the "blocks" index and waits for the task.
func (m *Meili) UpsertBlocks(ctx context.Context, blocks []*logseq.Block) error {
	return m.addDocuments(ctx, m.blocks, blocks)
}

func (m *Meili) addDocuments(ctx context.Context, index *meilisearch.Index, docs any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := index.AddDocuments(docs, "id")
	if err != nil {
		return fmt.Errorf("meilisearch: add documents to %s: %w", index.UID, err)
	}
	task, err := m.client.WaitForTask(info.TaskUID)
	if err != nil {
		return fmt.Errorf("meilisearch: wait for task %d: %w", info.TaskUID, err)
	}
	if task.Status != meilisearch.TaskStatusSucceeded {
		return fmt.Errorf("meilisearch: task %d %s: %s", info.TaskUID, task.Status, task.Error.Message)
	}
	return nil
}

// GetFile reads one file document by id.
func (m *Meili) GetFile(ctx context.Context, id string) (*logseq.File, error) {
	var f logseq.File
	if err := m.getDocument(ctx, m.files, id, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// GetBlock reads one block document by id.
func (m *Meili) GetBlock(ctx context.Context, id string) (*logseq.Block, error) {
	var b logseq.Block
	if err := m.getDocument(ctx, m.blocks, id, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (m *Meili) getDocument(ctx context.Context, index *meilisearch.Index, id string, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := index.GetDocument(id, nil, dst); err != nil {
		var apiErr *meilisearch.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			return fmt.Errorf("%s %s: %w", index.UID, id, ErrNotFound)
		}
		return fmt.Errorf("meilisearch: get %s from %s: %w", id, index.UID, err)
	}
	return nil
}

// SearchFiles runs a full-text query over the "files" index.
func (m *Meili) SearchFiles(ctx context.Context, query string, limit int) ([]*logseq.File, error) {
	var files []*logseq.File
	if err := m.search(ctx, m.files, query, limit, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// SearchBlocks runs a full-text query over the "blocks" index.
func (m *Meili) SearchBlocks(ctx context.Context, query string, limit int) ([]*logseq.Block, error) {
	var blocks []*logseq.Block
	if err := m.search(ctx, m.blocks, query, limit, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (m *Meili) search(ctx context.Context, index *meilisearch.Index, query string, limit int, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	resp, err := index.Search(query, &meilisearch.SearchRequest{Limit: int64(limit)})
	if err != nil {
		return fmt.Errorf("meilisearch: search %s: %w", index.UID, err)
	}
	raw, err := json.Marshal(resp.Hits)
	if err != nil {
		return fmt.Errorf("meilisearch: decode hits: %w", err)
	}
	return json.Unmarshal(raw, dst)
}

// Close releases the client. The Meilisearch client holds no persistent
// connection state.
func (m *Meili) Close() error {
	return nil
}
