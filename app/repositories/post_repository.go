package repositories

import (
	"fmt"

	"chirper/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB.
//
// Key layout:
//
//	post:{id}                         -> post record (JSON)
//	feed:{invertedStamp}:{seq}        -> post id
//	author:{authorId}:{stamp}:{seq}   -> post id
//
// The feed and author keys are recency indexes: the inverted timestamp
// makes forward prefix iteration yield newest-first, and the sequence
// number keeps insertion order stable when timestamps collide.
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Insert persists a new post along with its index entries. The post's
// ID and CreatedAt must already be assigned by the caller.
func (r *BadgerPostRepository) Insert(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		seq, err := nextSeq(txn, FeedSeqKey)
		if err != nil {
			return err
		}

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}

		key := []byte(PostKeyPrefix + post.ID)
		if err := txn.Set(key, data); err != nil {
			return err
		}

		stamp := invertedStamp(post.CreatedAt)
		feedKey := []byte(fmt.Sprintf("%s%s:%012d", FeedKeyPrefix, stamp, seq))
		if err := txn.Set(feedKey, []byte(post.ID)); err != nil {
			return err
		}

		authorKey := []byte(fmt.Sprintf("%s%s:%s:%012d", AuthorKeyPrefix, post.AuthorID, stamp, seq))
		return txn.Set(authorKey, []byte(post.ID))
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(PostKeyPrefix + id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// QueryRecent retrieves up to limit posts ordered newest-first.
func (r *BadgerPostRepository) QueryRecent(limit int) ([]*models.Post, error) {
	return r.queryIndex([]byte(FeedKeyPrefix), limit)
}

// QueryByAuthor retrieves all posts by one author ordered newest-first.
func (r *BadgerPostRepository) QueryByAuthor(authorID string) ([]*models.Post, error) {
	prefix := []byte(AuthorKeyPrefix + authorID + ":")
	return r.queryIndex(prefix, -1)
}

// queryIndex walks a recency index and loads each referenced post. A
// negative limit means no cap.
func (r *BadgerPostRepository) queryIndex(prefix []byte, limit int) ([]*models.Post, error) {
	var posts []*models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		var ids []string

		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if limit >= 0 && len(ids) >= limit {
				break
			}
			err := it.Item().Value(func(val []byte) error {
				ids = append(ids, string(val))
				return nil
			})
			if err != nil {
				it.Close()
				return err
			}
		}
		it.Close()

		for _, id := range ids {
			item, err := txn.Get([]byte(PostKeyPrefix + id))
			if err != nil {
				return fmt.Errorf("failed to load post %s: %v", id, err)
			}
			var post models.Post
			err = item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}
			posts = append(posts, &post)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return posts, nil
}
