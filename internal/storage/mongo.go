package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MosinFAM/reddit-forum/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type postDocument struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Title     string               `bson:"title"`
	Body      string               `bson:"body"`
	Subreddit string               `bson:"subreddit"`
	Comments  []primitive.ObjectID `bson:"comments"`
	CreatedAt time.Time            `bson:"createdAt"`
}

type commentDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	PostID    primitive.ObjectID `bson:"postId"`
	Body      string             `bson:"body"`
	Author    string             `bson:"author"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// MongoStorage keeps posts and comments in two collections; a post refers
// to its comments by ObjectID.
type MongoStorage struct {
	Client   *mongo.Client
	posts    *mongo.Collection
	comments *mongo.Collection
	hub      *commentHub
}

// NewMongoStorage uses the posts and comments collections of database.
func NewMongoStorage(client *mongo.Client, database string) *MongoStorage {
	db := client.Database(database)
	return &MongoStorage{
		Client:   client,
		posts:    db.Collection("posts"),
		comments: db.Collection("comments"),
		hub:      newCommentHub(),
	}
}

// EnsureIndexes creates the subreddit index used by GetPostsBySubreddit.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "subreddit", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create subreddit index: %w", err)
	}
	return nil
}

func (s *MongoStorage) AddPost(ctx context.Context, post models.Post) (models.Post, error) {
	doc := postDocument{
		ID:        primitive.NewObjectID(),
		Title:     post.Title,
		Body:      post.Body,
		Subreddit: post.Subreddit,
		Comments:  []primitive.ObjectID{},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := s.posts.InsertOne(ctx, doc); err != nil {
		log.Printf("AddPost error: %v", err)
		return models.Post{}, fmt.Errorf("insert post: %w", err)
	}
	return doc.model(), nil
}

func (s *MongoStorage) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	return s.findPosts(ctx, bson.M{})
}

func (s *MongoStorage) GetPostsBySubreddit(ctx context.Context, subreddit string) ([]models.Post, error) {
	return s.findPosts(ctx, bson.M{"subreddit": subreddit})
}

func (s *MongoStorage) findPosts(ctx context.Context, filter bson.M) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.posts.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("Find posts error: %v", err)
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]models.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.model())
	}
	return posts, nil
}

func (s *MongoStorage) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPostNotFound
	}

	var doc postDocument
	err = s.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		log.Printf("FindOne post %s error: %v", id, err)
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	post := doc.model()
	return &post, nil
}

func (s *MongoStorage) GetComments(ctx context.Context, ids []string) ([]models.Comment, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []models.Comment{}, nil
	}

	cursor, err := s.comments.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []commentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	byID := make(map[string]models.Comment, len(docs))
	for _, d := range docs {
		byID[d.ID.Hex()] = d.model()
	}
	return orderComments(ids, byID), nil
}

// AddComment inserts the comment, then prepends its id with a single
// atomic $push. If the post does not exist the comment is removed again.
func (s *MongoStorage) AddComment(ctx context.Context, postID string, comment models.Comment) (*models.Comment, error) {
	postOID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}

	doc := commentDocument{
		ID:        primitive.NewObjectID(),
		PostID:    postOID,
		Body:      comment.Body,
		Author:    comment.Author,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := s.comments.InsertOne(ctx, doc); err != nil {
		log.Printf("AddComment insert error: %v", err)
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	update := bson.M{"$push": bson.M{"comments": bson.M{
		"$each":     bson.A{doc.ID},
		"$position": 0,
	}}}
	res, err := s.posts.UpdateOne(ctx, bson.M{"_id": postOID}, update)
	if err == nil && res.MatchedCount == 0 {
		err = ErrPostNotFound
	}
	if err != nil {
		s.removeOrphan(doc.ID)
		if errors.Is(err, ErrPostNotFound) {
			return nil, err
		}
		log.Printf("AddComment attach error: %v", err)
		return nil, fmt.Errorf("attach comment to post %s: %w", postID, err)
	}

	saved := doc.model()
	s.hub.publish(saved)
	return &saved, nil
}

// removeOrphan runs on its own context so a cancelled request still cleans up.
func (s *MongoStorage) removeOrphan(id primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.comments.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		log.Printf("Failed to remove orphaned comment %s: %v", id.Hex(), err)
	}
}

func (s *MongoStorage) SubscribeToComments(ctx context.Context, postID string) (<-chan *models.Comment, error) {
	if _, err := s.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.hub.subscribe(ctx, postID), nil
}

func (s *MongoStorage) Close(ctx context.Context) error {
	if err := s.Client.Disconnect(ctx); err != nil {
		return err
	}
	log.Println("Disconnected from MongoDB")
	return nil
}

func (d postDocument) model() models.Post {
	ids := make([]string, 0, len(d.Comments))
	for _, oid := range d.Comments {
		ids = append(ids, oid.Hex())
	}
	return models.Post{
		ID:         d.ID.Hex(),
		Title:      d.Title,
		Body:       d.Body,
		Subreddit:  d.Subreddit,
		CommentIDs: ids,
		CreatedAt:  d.CreatedAt,
	}
}

func (d commentDocument) model() models.Comment {
	return models.Comment{
		ID:        d.ID.Hex(),
		PostID:    d.PostID.Hex(),
		Body:      d.Body,
		Author:    d.Author,
		CreatedAt: d.CreatedAt,
	}
}
