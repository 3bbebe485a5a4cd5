// Package mongostore implements store.Store on top of MongoDB. Identifiers
// are ObjectIDs, exposed as their hex form.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/SergeyParamoshkin/articles/internal/store"
)

const (
	articlesCollection = "articles"
	commentsCollection = "comments"

	codeNamespaceExists           = 48
	codeDocumentValidationFailure = 121
)

type Store struct {
	client   *mongo.Client
	db       *mongo.Database
	articles *mongo.Collection
	comments *mongo.Collection
}

var _ store.Store = (*Store)(nil)

type articleDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Title  string             `bson:"title"`
	Body   string             `bson:"body"`
	Author string             `bson:"author"`
}

func (d articleDocument) model() model.Article {
	return model.Article{ID: d.ID.Hex(), Title: d.Title, Body: d.Body, Author: d.Author}
}

type commentDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Author  string             `bson:"author"`
	Body    string             `bson:"body"`
	Article primitive.ObjectID `bson:"article"`
}

func (d commentDocument) model() model.Comment {
	return model.Comment{ID: d.ID.Hex(), Author: d.Author, Body: d.Body, Article: d.Article.Hex()}
}

// Open connects to uri and checks the deployment is reachable. timeout bounds
// every socket operation and server selection.
func Open(ctx context.Context, uri, database string, timeout time.Duration) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetSocketTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)

		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)

	return &Store{
		client:   client,
		db:       db,
		articles: db.Collection(articlesCollection),
		comments: db.Collection(commentsCollection),
	}, nil
}

// Initialize creates both collections with a $jsonSchema validator and
// indexes comments by parent article. Existing collections are left as is.
func (s *Store) Initialize(ctx context.Context) error {
	schemas := []struct {
		name     string
		required bson.A
		props    bson.M
	}{
		{
			name:     articlesCollection,
			required: bson.A{"title", "body", "author"},
			props: bson.M{
				"title":  bson.M{"bsonType": "string"},
				"body":   bson.M{"bsonType": "string"},
				"author": bson.M{"bsonType": "string"},
			},
		},
		{
			name:     commentsCollection,
			required: bson.A{"author", "body", "article"},
			props: bson.M{
				"author":  bson.M{"bsonType": "string"},
				"body":    bson.M{"bsonType": "string"},
				"article": bson.M{"bsonType": "objectId"},
			},
		},
	}

	for _, sc := range schemas {
		validator := bson.M{"$jsonSchema": bson.M{
			"bsonType":   "object",
			"required":   sc.required,
			"properties": sc.props,
		}}
		err := s.db.CreateCollection(ctx, sc.name, options.CreateCollection().SetValidator(validator))
		if err != nil && !hasCode(err, codeNamespaceExists) {
			return fmt.Errorf("create collection %s: %w", sc.name, err)
		}
	}

	_, err := s.comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "article", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create comments index: %w", err)
	}

	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) ListArticles(ctx context.Context) ([]model.Article, error) {
	cur, err := s.articles.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}

	var docs []articleDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}

	list := make([]model.Article, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.model())
	}

	return list, nil
}

func (s *Store) GetArticle(ctx context.Context, id string) (model.Article, bool, error) {
	oid, err := objectID(id, "_id")
	if err != nil {
		return model.Article{}, false, err
	}

	var doc articleDocument
	err = s.articles.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)

	return articleResult(doc, err)
}

func (s *Store) CreateArticle(ctx context.Context, article model.Article) (model.Article, error) {
	if err := store.ValidateArticle(article); err != nil {
		return model.Article{}, err
	}

	doc := articleDocument{
		ID:     primitive.NewObjectID(),
		Title:  article.Title,
		Body:   article.Body,
		Author: article.Author,
	}
	if _, err := s.articles.InsertOne(ctx, doc); err != nil {
		return model.Article{}, translate(err, "article")
	}

	return doc.model(), nil
}

func (s *Store) UpdateArticle(ctx context.Context, id string, patch model.ArticlePatch) (model.Article, bool, error) {
	oid, err := objectID(id, "_id")
	if err != nil {
		return model.Article{}, false, err
	}

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Body != nil {
		set["body"] = *patch.Body
	}
	if patch.Author != nil {
		set["author"] = *patch.Author
	}
	if len(set) == 0 {
		return s.GetArticle(ctx, id)
	}

	var doc articleDocument
	err = s.articles.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)

	return articleResult(doc, err)
}

func (s *Store) DeleteArticle(ctx context.Context, id string) (model.Article, bool, error) {
	oid, err := objectID(id, "_id")
	if err != nil {
		return model.Article{}, false, err
	}

	var doc articleDocument
	err = s.articles.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)

	return articleResult(doc, err)
}

func (s *Store) ListComments(ctx context.Context) ([]model.Comment, error) {
	return s.findComments(ctx, bson.M{})
}

func (s *Store) ListCommentsByArticle(ctx context.Context, articleID string) ([]model.Comment, error) {
	oid, err := objectID(articleID, "article")
	if err != nil {
		return nil, err
	}

	return s.findComments(ctx, bson.M{"article": oid})
}

func (s *Store) findComments(ctx context.Context, filter bson.M) ([]model.Comment, error) {
	cur, err := s.comments.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}

	var docs []commentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	list := make([]model.Comment, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.model())
	}

	return list, nil
}

func (s *Store) GetComment(ctx context.Context, id string) (model.Comment, bool, error) {
	oid, err := objectID(id, "_id")
	if err != nil {
		return model.Comment{}, false, err
	}

	var doc commentDocument
	err = s.comments.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)

	return commentResult(doc, err)
}

func (s *Store) CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error) {
	if err := store.ValidateComment(comment); err != nil {
		return model.Comment{}, err
	}
	articleID, err := objectID(comment.Article, "article")
	if err != nil {
		return model.Comment{}, err
	}

	doc := commentDocument{
		ID:      primitive.NewObjectID(),
		Author:  comment.Author,
		Body:    comment.Body,
		Article: articleID,
	}
	if _, err := s.comments.InsertOne(ctx, doc); err != nil {
		return model.Comment{}, translate(err, "comment")
	}

	return doc.model(), nil
}

func (s *Store) UpdateComment(ctx context.Context, id string, patch model.CommentPatch) (model.Comment, bool, error) {
	oid, err := objectID(id, "_id")
	if err != nil {
		return model.Comment{}, false, err
	}

	set := bson.M{}
	if patch.Author != nil {
		set["author"] = *patch.Author
	}
	if patch.Body != nil {
		set["body"] = *patch.Body
	}
	if patch.Article != nil {
		articleID, err := objectID(*patch.Article, "article")
		if err != nil {
			return model.Comment{}, false, err
		}
		set["article"] = articleID
	}
	if len(set) == 0 {
		return s.GetComment(ctx, id)
	}

	var doc commentDocument
	err = s.comments.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)

	return commentResult(doc, err)
}

func (s *Store) DeleteComment(ctx context.Context, id string) (model.Comment, bool, error) {
	oid, err := objectID(id, "_id")
	if err != nil {
		return model.Comment{}, false, err
	}

	var doc commentDocument
	err = s.comments.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)

	return commentResult(doc, err)
}

func (s *Store) DeleteCommentsByArticle(ctx context.Context, articleID string) (model.DeleteResult, error) {
	oid, err := objectID(articleID, "article")
	if err != nil {
		return model.DeleteResult{}, err
	}

	res, err := s.comments.DeleteMany(ctx, bson.M{"article": oid})
	if err != nil {
		return model.DeleteResult{}, fmt.Errorf("delete comments of article %s: %w", articleID, err)
	}

	return model.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

func articleResult(doc articleDocument, err error) (model.Article, bool, error) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Article{}, false, nil
	}
	if err != nil {
		return model.Article{}, false, translate(err, "article")
	}

	return doc.model(), true, nil
}

func commentResult(doc commentDocument, err error) (model.Comment, bool, error) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Comment{}, false, nil
	}
	if err != nil {
		return model.Comment{}, false, translate(err, "comment")
	}

	return doc.model(), true, nil
}

func objectID(id, path string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, &store.CastError{Kind: "ObjectId", Value: id, Path: path, Err: err}
	}

	return oid, nil
}

// translate maps server side schema rejections onto store.ValidationError.
func translate(err error, collection string) error {
	if hasCode(err, codeDocumentValidationFailure) {
		return &store.ValidationError{Collection: collection, Reason: "document failed validation"}
	}

	return err
}

func hasCode(err error, code int) bool {
	var se mongo.ServerError

	return errors.As(err, &se) && se.HasErrorCode(code)
}
